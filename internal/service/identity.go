package service

// Identity 调用方身份，由认证中间件构造后显式传入服务层
type Identity struct {
	UserID  uint
	IsAdmin bool
}

// Valid 是否为已认证身份
func (id Identity) Valid() bool {
	return id.UserID != 0 || id.IsAdmin
}

// CanAccessOrderOf 是否可访问指定用户的订单
func (id Identity) CanAccessOrderOf(ownerID uint) bool {
	if id.IsAdmin {
		return true
	}
	return id.UserID != 0 && id.UserID == ownerID
}
