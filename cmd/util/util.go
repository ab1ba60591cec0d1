package util

import (
	"strings"

	"github.com/hydrakv/hydrakv-go/client"
	"github.com/hydrakv/hydrakv-go/lib/keystore"
	"github.com/hydrakv/hydrakv-go/rpc/common"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	// Wrap is the number of characters to Wrap the help text at
	Wrap int = 50
)

// WrapString wraps a string at Wrap characters
func WrapString(text string) string {
	var wrappedLines []string
	var currentLine strings.Builder
	lineWidth := 0

	for _, word := range strings.Fields(text) {
		wordWidth := len(word)

		// Check if we need to wrap
		if lineWidth > 0 && lineWidth+1+wordWidth > Wrap {
			wrappedLines = append(wrappedLines, currentLine.String())
			currentLine.Reset()
			lineWidth = 0
		}

		// Add space before word (if not first word on line)
		if lineWidth > 0 {
			currentLine.WriteString(" ")
			lineWidth++
		}

		// Add the word
		currentLine.WriteString(word)
		lineWidth += wordWidth
	}

	// Add any remaining text
	if currentLine.Len() > 0 {
		wrappedLines = append(wrappedLines, currentLine.String())
	}

	return strings.Join(wrappedLines, "\n")
}

// SetupClientFlags adds the common server connection flags to a command
func SetupClientFlags(cmd *cobra.Command) {
	key := "host"
	cmd.PersistentFlags().String(key, common.DefaultHost, WrapString("The hostname or IP of the hydrakv server"))

	key = "http-port"
	cmd.PersistentFlags().Int(key, common.DefaultHTTPPort, WrapString("The port of the server's HTTP API"))

	key = "grpc-port"
	cmd.PersistentFlags().Int(key, common.DefaultGRPCPort, WrapString("The port of the server's RPC API"))

	key = "http-timeout"
	cmd.PersistentFlags().Int(key, common.DefaultHTTPTimeoutSec, WrapString("The timeout in seconds for HTTP calls"))

	key = "grpc-deadline"
	cmd.PersistentFlags().Int(key, common.DefaultGRPCDeadlineSec, WrapString("The per-call deadline in seconds for RPC calls"))

	key = "tls"
	cmd.PersistentFlags().Bool(key, false, WrapString("Whether to connect over TLS"))

	key = "trusted-cert"
	cmd.PersistentFlags().String(key, "", WrapString("Path to a PEM file with the server certificate to trust (requires --tls)"))

	key = "keys-file"
	cmd.PersistentFlags().String(key, "", WrapString("Path to a JSON file mapping database names to api keys, as written by 'db export-keys'"))
}

// InitClientConfig initializes configuration from environment variables
func InitClientConfig() {
	// load env files
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	// initialize viper
	viper.SetEnvPrefix("hydrakv")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // read in environment variables that match
}

// GetClientConfig reads client configuration from viper
func GetClientConfig() (common.ClientConfig, error) {
	conf := common.ClientConfig{
		Host:            viper.GetString("host"),
		HTTPPort:        viper.GetInt("http-port"),
		GRPCPort:        viper.GetInt("grpc-port"),
		Transport:       common.TransportKind(viper.GetString("transport")),
		GRPCDeadlineSec: viper.GetInt("grpc-deadline"),
		HTTPTimeoutSec:  viper.GetInt("http-timeout"),
		TLS:             viper.GetBool("tls"),
		TrustedCertFile: viper.GetString("trusted-cert"),
		Codec:           viper.GetString("codec"),
		LogLevel:        viper.GetString("log-level"),
	}

	if path := viper.GetString("keys-file"); path != "" {
		keys, err := keystore.LoadFile(path)
		if err != nil {
			return conf, err
		}
		conf.APIKeys = keys
	}

	return conf, nil
}

// NewClient builds a connected client from the viper configuration
func NewClient() (*client.Client, error) {
	conf, err := GetClientConfig()
	if err != nil {
		return nil, err
	}
	return client.New(conf)
}

// BindCommandFlags binds a command's flags to viper
func BindCommandFlags(cmd *cobra.Command) error {
	return viper.BindPFlags(cmd.Flags())
}
