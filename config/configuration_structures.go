package config

import "github.com/aws/aws-sdk-go-v2/service/s3"

type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type S3Config struct {
	Bucket   string `yaml:"bucket"`
	Client   *s3.Client
	Region   string `yaml:"region"`
	Endpoint string `yaml:"endpoint"`
	Local    bool   `yaml:"local"`
}

type JWTConfig struct {
	SecretKey       string `yaml:"secret_key"`
	AccessTokenTTL  string `yaml:"access_token_ttl"`
	RefreshTokenTTL string `yaml:"refresh_token_ttl"`
}

// TTL задаёт срок жизни pre-signed URL и записей в кэше (в секундах)
type TTL struct {
	S3AndRedis int `yaml:"s3_and_redis"`
}

// TransferConfig : политика Transfer Coordinator, не слой хранилища
type TransferConfig struct {
	UploadTimeout   string `yaml:"upload_timeout"`
	DownloadTimeout string `yaml:"download_timeout"`
}
