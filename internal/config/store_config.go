package config

// Store backends
const (
	StoreMemory  = "memory"
	StoreMongoDB = "mongodb"
	StoreRedis   = "redis"
)

type StoreConfig interface {
	GetUserStore() string
	GetSessionStore() string
	GetMongoURI() string
	GetMongoDatabase() string
	GetRedisAddr() string
	GetRedisPassword() string
	GetRedisDB() int
	GetRedisPrefix() string
}

type Stores struct {
	UserStore     string `envconfig:"USER_STORE" default:"mongodb"`
	SessionStore  string `envconfig:"SESSION_STORE" default:"redis"`
	MongoURI      string `envconfig:"MONGODB_URI" default:"mongodb://localhost:27017"`
	MongoDatabase string `envconfig:"MONGODB_DATABASE" default:"linkedin_stats"`
	RedisAddr     string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	RedisPassword string `envconfig:"REDIS_PASSWORD"`
	RedisDB       int    `envconfig:"REDIS_DB"`
	RedisPrefix   string `envconfig:"REDIS_PREFIX" default:"linkedin-stats"`
}

var _ StoreConfig = Stores{}

func (s Stores) GetUserStore() string     { return s.UserStore }
func (s Stores) GetSessionStore() string  { return s.SessionStore }
func (s Stores) GetMongoURI() string      { return s.MongoURI }
func (s Stores) GetMongoDatabase() string { return s.MongoDatabase }
func (s Stores) GetRedisAddr() string     { return s.RedisAddr }
func (s Stores) GetRedisPassword() string { return s.RedisPassword }
func (s Stores) GetRedisDB() int          { return s.RedisDB }
func (s Stores) GetRedisPrefix() string   { return s.RedisPrefix }
