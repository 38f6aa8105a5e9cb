package config

import (
	"crypto/rsa"
	"encoding/base64"
	"encoding/pem"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/joho/godotenv"
	"github.com/launchdarkly/go-sdk-common/v3/ldcontext"
	ld "github.com/launchdarkly/go-server-sdk/v7"
	"github.com/vegaswarrior/Property-Management-sub001/internal/constants"
	"github.com/vegaswarrior/Property-Management-sub001/internal/utils"
)

type Config struct {
	OrganizationName string
	AppName          string
	AppPort          string
	AppUrl           string // public base URL (signing pages, portal links)
	BaseDomain       string // apex domain for subdomain tenant resolution
	DBUrl            string

	StripeSecretKey          string
	StripePriceStarter       string
	StripePriceProfessional  string
	StripePricePortfolio     string
	TwilioAccountSID         string
	TwilioAuthToken          string
	TwilioFromNumber         string
	SendgridAPIKey           string

	ObjectStoreEndpoint      string
	ObjectStoreAccessKey     string
	ObjectStoreSecretKey     string
	ObjectStoreUseSSL        bool
	ObjectStorePublicBaseURL string

	RSAPrivateKey *rsa.PrivateKey
	RSAPublicKey  *rsa.PublicKey

	LDSDKKey                         string
	LDFlag_ValidatePhoneWithTwilio   bool
	LDFlag_ValidateEmailWithSendGrid bool
	LDFlag_SendgridSandboxMode       bool
	LDFlag_SendgridFromEmail         string
	LDFlag_CORSHighSecurity          bool
	LDFlag_SeedDbWithTestAccounts    bool
}

const LDConnectionTimeout = 5 * time.Second

// Default values, override via ldflags at build time.
var (
	AppName             = "rentledger-api"
	LDServerContextKey  = "rentledger-server"
	LDServerContextKind = "server"
)

func LoadConfig() *Config {
	//----------------------------------------------------------------------
	// Load environment variables. A local .env is optional; real
	// deployments inject everything through the environment.
	//----------------------------------------------------------------------
	if err := godotenv.Load(); err != nil {
		utils.Logger.Debug("No .env file found, relying on process environment")
	}

	env := os.Getenv("ENV")
	if env == "" {
		utils.Logger.Fatal("ENV env var is missing")
	}
	appUrl := os.Getenv("APP_URL_FROM_ANYWHERE")
	if appUrl == "" {
		utils.Logger.Fatal("APP_URL_FROM_ANYWHERE env var is missing")
	}
	appPort := os.Getenv("APP_PORT")
	if appPort == "" {
		utils.Logger.Fatal("APP_PORT env var is missing")
	}
	baseDomain := os.Getenv("BASE_DOMAIN")
	if baseDomain == "" {
		utils.Logger.Fatal("BASE_DOMAIN env var is missing")
	}

	utils.Logger.Debugf("App can be accessed at: %s", appUrl)

	//----------------------------------------------------------------------
	// Create BWSSecretsClient
	//----------------------------------------------------------------------
	client, err := utils.NewBWSSecretsClient()
	if err != nil {
		utils.Logger.WithError(err).Fatal("Failed to initialize BWSSecretsClient")
	}

	//----------------------------------------------------------------------
	// Fetch app-specific secrets from BWS (appName-env)
	//----------------------------------------------------------------------
	bwsProjectName := fmt.Sprintf("%s-%s", AppName, env)
	appSecrets, err := client.GetBWSSecrets(bwsProjectName)
	if err != nil {
		utils.Logger.WithError(err).Fatal("Failed to fetch app-specific secrets from BWS")
	}

	//----------------------------------------------------------------------
	// Fetch shared secrets from BWS (shared-env)
	//----------------------------------------------------------------------
	bwsSharedProjectName := fmt.Sprintf("shared-%s", env)
	sharedSecrets, err := client.GetBWSSecrets(bwsSharedProjectName)
	if err != nil {
		utils.Logger.WithError(err).Fatal("Failed to fetch shared secrets from BWS")
	}

	mustAppSecret := func(key string) string {
		v, ok := appSecrets[key]
		if !ok || v == "" {
			utils.Logger.Fatalf("%s not found in BWS secrets (%s)", key, bwsProjectName)
		}
		return v
	}
	mustSharedSecret := func(key string) string {
		v, ok := sharedSecrets[key]
		if !ok || v == "" {
			utils.Logger.Fatalf("%s not found in BWS secrets (%s)", key, bwsSharedProjectName)
		}
		return v
	}

	dbURL := mustAppSecret("DB_URL")
	ldSDKKey := mustAppSecret("LD_SDK_KEY")

	stripeSecretKey := mustSharedSecret("STRIPE_SECRET_KEY")
	stripePriceStarter := mustSharedSecret("STRIPE_PRICE_STARTER")
	stripePriceProfessional := mustSharedSecret("STRIPE_PRICE_PROFESSIONAL")
	stripePricePortfolio := mustSharedSecret("STRIPE_PRICE_PORTFOLIO")

	twilioAccountSID := mustSharedSecret("TWILIO_ACCOUNT_SID")
	twilioAuthToken := mustSharedSecret("TWILIO_AUTH_TOKEN")
	twilioFromNumber := mustSharedSecret("TWILIO_FROM_NUMBER")
	sendgridAPIKey := mustSharedSecret("SENDGRID_API_KEY")

	objectStoreEndpoint := mustAppSecret("OBJECT_STORE_ENDPOINT")
	objectStoreAccessKey := mustAppSecret("OBJECT_STORE_ACCESS_KEY")
	objectStoreSecretKey := mustAppSecret("OBJECT_STORE_SECRET_KEY")
	objectStorePublicBaseURL := mustAppSecret("OBJECT_STORE_PUBLIC_BASE_URL")
	objectStoreUseSSL := appSecrets["OBJECT_STORE_USE_SSL"] != "false"

	//----------------------------------------------------------------------
	// Parse RSA keys from sharedSecrets
	//----------------------------------------------------------------------
	privateKeyPEM, err := base64.StdEncoding.DecodeString(mustSharedSecret("RSA_PRIVATE_KEY_BASE64"))
	if err != nil {
		utils.Logger.WithError(err).Fatal("Failed to decode base64 private key")
	}
	if block, _ := pem.Decode(privateKeyPEM); block == nil {
		utils.Logger.Fatal("Failed to decode PEM block for private key")
	}
	privateKey, err := jwt.ParseRSAPrivateKeyFromPEM(privateKeyPEM)
	if err != nil {
		utils.Logger.WithError(err).Fatal("Failed to parse RSA private key")
	}

	publicKeyPEM, err := base64.StdEncoding.DecodeString(mustSharedSecret("RSA_PUBLIC_KEY_BASE64"))
	if err != nil {
		utils.Logger.WithError(err).Fatal("Failed to decode base64 public key")
	}
	if block, _ := pem.Decode(publicKeyPEM); block == nil {
		utils.Logger.Fatal("Failed to decode PEM block for public key")
	}
	publicKey, err := jwt.ParseRSAPublicKeyFromPEM(publicKeyPEM)
	if err != nil {
		utils.Logger.WithError(err).Fatal("Failed to parse RSA public key")
	}

	//----------------------------------------------------------------------
	// Initialize the LaunchDarkly client and snapshot feature flags
	//----------------------------------------------------------------------
	ldClient, err := ld.MakeClient(ldSDKKey, LDConnectionTimeout)
	if err != nil {
		utils.Logger.WithError(err).Fatal("Failed to create LaunchDarkly client")
	}
	if !ldClient.Initialized() {
		ldClient.Close()
		utils.Logger.Fatal("LaunchDarkly client failed to initialize")
	}
	defer ldClient.Close()

	ldCtx := ldcontext.NewWithKind(ldcontext.Kind(LDServerContextKind), LDServerContextKey)

	boolFlag := func(name string) bool {
		v, err := ldClient.BoolVariation(name, ldCtx, false)
		if err != nil {
			ldClient.Close()
			utils.Logger.WithError(err).Fatalf("Error retrieving %s flag", name)
		}
		utils.Logger.Debugf("%s flag: %t", name, v)
		return v
	}

	validatePhoneWithTwilio := boolFlag("validate_phone_with_twilio")
	validateEmailWithSendGrid := boolFlag("validate_email_with_sendgrid")
	sendgridSandboxMode := boolFlag("sendgrid_sandbox_mode")
	corsHighSecurityFlag := boolFlag("cors_high_security")
	seedTestAccounts := boolFlag("seed_db_with_test_accounts")

	sendgridFromEmail, err := ldClient.StringVariation("sendgrid_from_email", ldCtx, "")
	if err != nil {
		ldClient.Close()
		utils.Logger.WithError(err).Fatal("Error retrieving sendgrid_from_email flag")
	}
	utils.Logger.Debugf("sendgrid_from_email flag: %s", sendgridFromEmail)

	return &Config{
		OrganizationName: constants.OrganizationName,
		AppName:          AppName,
		AppPort:          appPort,
		AppUrl:           appUrl,
		BaseDomain:       baseDomain,
		DBUrl:            dbURL,

		StripeSecretKey:         stripeSecretKey,
		StripePriceStarter:      stripePriceStarter,
		StripePriceProfessional: stripePriceProfessional,
		StripePricePortfolio:    stripePricePortfolio,
		TwilioAccountSID:        twilioAccountSID,
		TwilioAuthToken:         twilioAuthToken,
		TwilioFromNumber:        twilioFromNumber,
		SendgridAPIKey:          sendgridAPIKey,

		ObjectStoreEndpoint:      objectStoreEndpoint,
		ObjectStoreAccessKey:     objectStoreAccessKey,
		ObjectStoreSecretKey:     objectStoreSecretKey,
		ObjectStoreUseSSL:        objectStoreUseSSL,
		ObjectStorePublicBaseURL: objectStorePublicBaseURL,

		RSAPrivateKey: privateKey,
		RSAPublicKey:  publicKey,

		LDSDKKey:                         ldSDKKey,
		LDFlag_ValidatePhoneWithTwilio:   validatePhoneWithTwilio,
		LDFlag_ValidateEmailWithSendGrid: validateEmailWithSendGrid,
		LDFlag_SendgridSandboxMode:       sendgridSandboxMode,
		LDFlag_SendgridFromEmail:         sendgridFromEmail,
		LDFlag_CORSHighSecurity:          corsHighSecurityFlag,
		LDFlag_SeedDbWithTestAccounts:    seedTestAccounts,
	}
}

func (c *Config) Close() {}
