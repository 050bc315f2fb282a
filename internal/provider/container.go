package provider

import (
	"github.com/atelier-shop/internal/cache"
	"github.com/atelier-shop/internal/config"
	"github.com/atelier-shop/internal/logger"
	"github.com/atelier-shop/internal/models"
	"github.com/atelier-shop/internal/queue"
	"github.com/atelier-shop/internal/repository"
	"github.com/atelier-shop/internal/service"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	UserRepo            repository.UserRepository
	OrderRepo           repository.OrderRepository
	ProductRepo         repository.ProductRepository
	ProductVariantRepo  repository.ProductVariantRepository
	CartRepo            repository.CartRepository
	CategoryRepo        repository.CategoryRepository
	DeliveryAddressRepo repository.DeliveryAddressRepository

	// Services
	UserAuthService        *service.UserAuthService
	EmailService           *service.EmailService
	ProductService         *service.ProductService
	ProductVariantService  *service.ProductVariantService
	CategoryService        *service.CategoryService
	CartService            *service.CartService
	OrderService           *service.OrderService
	DeliveryAddressService *service.DeliveryAddressService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化队列客户端
	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}

	c.initRepositories()
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.UserRepo = repository.NewUserRepository(db)
	c.OrderRepo = repository.NewOrderRepository(db)
	c.ProductRepo = repository.NewProductRepository(db)
	c.ProductVariantRepo = repository.NewProductVariantRepository(db)
	c.CartRepo = repository.NewCartRepository(db)
	c.CategoryRepo = repository.NewCategoryRepository(db)
	c.DeliveryAddressRepo = repository.NewDeliveryAddressRepository(db)
}

func (c *Container) initServices() {
	c.EmailService = service.NewEmailService(&c.Config.Email)
	c.UserAuthService = service.NewUserAuthService(c.Config, c.UserRepo)
	c.ProductService = service.NewProductService(c.ProductRepo, c.CategoryRepo)
	c.ProductVariantService = service.NewProductVariantService(c.ProductVariantRepo, c.ProductRepo)
	c.CategoryService = service.NewCategoryService(c.CategoryRepo)
	c.CartService = service.NewCartService(c.CartRepo, c.ProductRepo)
	c.OrderService = service.NewOrderService(c.OrderRepo, c.ProductRepo, c.CartRepo, c.QueueClient, c.Config.Order.EnforceStock)
	c.DeliveryAddressService = service.NewDeliveryAddressService(c.DeliveryAddressRepo)
}
