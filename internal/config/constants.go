package config

// Environment names
const (
	EnvDev  = "dev"
	EnvProd = "prod"
)
