package config

const (
	adminUsernameEnvVar = "ADMIN_USERNAME"
	adminPasswordEnvVar = "ADMIN_PASSWORD"
	authTokenEnvVar     = "AUTH_TOKEN"
)

type AuthConfig interface {
	GetAdminUsername() string
	GetAdminPassword() string
	// GetStaticToken returns a fixed credential, or "" to mint one at startup.
	GetStaticToken() string
	GetTokenSecretLength() int
}

type Auth struct{}

var _ AuthConfig = Auth{}

func (Auth) GetAdminUsername() string {
	return GetEnv(adminUsernameEnvVar, "admin")
}

func (Auth) GetAdminPassword() string {
	return GetEnv(adminPasswordEnvVar, "1234")
}

func (Auth) GetStaticToken() string {
	return GetEnv(authTokenEnvVar, "")
}

func (Auth) GetTokenSecretLength() int {
	return 32 // 32 bytes = 256 bits
}
