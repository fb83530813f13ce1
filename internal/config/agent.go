package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/ogier/pflag"

	"kunlun/internal/domain"
)

const (
	DefaultConfigFile = "/root/.kunlun/config"
	DefaultInterval   = 10
)

var (
	ErrMissingURL      = errors.New("target url is required (-u)")
	ErrInvalidInterval = errors.New("interval must be a positive number of seconds (-s)")
)

type Agent struct {
	TargetURL      string
	Interval       time.Duration
	Name           string
	Location       string
	ConfigFile     string
	MachineIDCache string
	Print          bool
	LogLevel       string
	LogFormat      string
}

// LoadAgent parses command-line args (without the program name) on top of
// the environment. Name and location come from SERVER_NAME and
// SERVER_LOCATION, then the key-value config file, then the defaults.
func LoadAgent(args []string, usage io.Writer) (*Agent, error) {
	fs := pflag.NewFlagSet("kunlun-agent", pflag.ContinueOnError)
	fs.SetOutput(usage)

	interval := fs.IntP("interval", "s", DefaultInterval, "seconds between reports")
	target := fs.StringP("url", "u", "", "receiver URL to POST reports to")
	configFile := fs.String("config", getEnv("KUNLUN_CONFIG", DefaultConfigFile), "key-value file with SERVER_NAME and SERVER_LOCATION")
	idCache := fs.String("id-cache", getEnv("MACHINE_ID_CACHE", ""), "file to persist a generated machine id in")
	printOnly := fs.Bool("print", false, "print one snapshot as JSON and exit instead of reporting")

	fs.Usage = func() {
		fmt.Fprintf(usage, "Usage: kunlun-agent -s <interval> -u <url>\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if *interval <= 0 {
		fs.Usage()
		return nil, ErrInvalidInterval
	}
	if strings.TrimSpace(*target) == "" && !*printOnly {
		fs.Usage()
		return nil, ErrMissingURL
	}

	fileValues := readKeyValueFile(*configFile)

	return &Agent{
		TargetURL:      strings.TrimSpace(*target),
		Interval:       time.Duration(*interval) * time.Second,
		Name:           resolve("SERVER_NAME", fileValues, domain.DefaultName),
		Location:       resolve("SERVER_LOCATION", fileValues, domain.DefaultLocation),
		ConfigFile:     *configFile,
		MachineIDCache: *idCache,
		Print:          *printOnly,
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFormat:      getEnv("LOG_FORMAT", "text"),
	}, nil
}

func resolve(key string, fileValues map[string]string, fallback string) string {
	if v := getEnv(key, ""); v != "" {
		return v
	}
	if v := strings.TrimSpace(fileValues[key]); v != "" {
		return v
	}
	return fallback
}

// readKeyValueFile returns nil when the file is missing or unreadable.
func readKeyValueFile(path string) map[string]string {
	if path == "" {
		return nil
	}

	values, err := godotenv.Read(path)
	if err == nil {
		return values
	}

	// Fall back to plain KEY=VALUE lines for files godotenv rejects.
	data, readErr := os.ReadFile(path)
	if readErr != nil {
		return nil
	}

	values = make(map[string]string)
	for _, line := range bytes.Split(data, []byte("\n")) {
		key, value, ok := strings.Cut(strings.TrimSpace(string(line)), "=")
		if !ok || strings.HasPrefix(key, "#") {
			continue
		}
		values[strings.TrimSpace(key)] = strings.Trim(strings.TrimSpace(value), `"'`)
	}
	return values
}
