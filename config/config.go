package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"golang.org/x/net/idna"
)

const (
	DefaultDomain     = "https://utility.rajlabs.in"
	DefaultOutputFile = "./public/sitemap.xml"
	DefaultMaxDepth   = 1
	DefaultServerPort = 8080
)

type Config struct {
	Generator struct {
		RouterFile string
		Domain     string
		OutputFile string
		Hostnames  []string
		MaxDepth   int
	}
	Database struct {
		URL string
	}
	Server struct {
		Port int
	}
	Log struct {
		Dir     string
		Verbose bool
	}
}

// hostProfile maps and checks hosts like a lookup but without STD3 rules,
// so names such as web_app pass.
var hostProfile = idna.New(idna.MapForLookup(), idna.StrictDomainName(false))

// flagKeys maps command line flags to their viper keys.
var flagKeys = map[string]string{
	"router-file": "generator.routerfile",
	"domain":      "generator.domain",
	"output-file": "generator.outputfile",
	"hostname":    "generator.hostnames",
	"max-depth":   "generator.maxdepth",
	"database":    "database.url",
	"port":        "server.port",
	"verbose":     "log.verbose",
}

// BindFlags registers viper keys for every known flag present in flags.
func BindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	for name, key := range flagKeys {
		f := flags.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("failed to bind flag %s: %w", name, err)
		}
	}
	return nil
}

// SetDefaults installs the default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("generator.routerfile", "")
	v.SetDefault("generator.domain", DefaultDomain)
	v.SetDefault("generator.outputfile", DefaultOutputFile)
	v.SetDefault("generator.hostnames", []string{})
	v.SetDefault("generator.maxdepth", DefaultMaxDepth)
	v.SetDefault("database.url", "")
	v.SetDefault("server.port", DefaultServerPort)
	v.SetDefault("log.dir", "")
	v.SetDefault("log.verbose", false)
}

// LoadConfig reads configuration from cfgFile, or from config.yaml in the
// working directory, ./config or the home directory when cfgFile is empty.
// A missing search-path config file is not an error.
func LoadConfig(v *viper.Viper, cfgFile string) (*Config, error) {
	SetDefaults(v)

	v.SetConfigType("yaml")
	if cfgFile != "" {
		path, err := homedir.Expand(cfgFile)
		if err != nil {
			return nil, err
		}
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		if home, err := homedir.Dir(); err == nil {
			v.AddConfigPath(home)
		}
	}

	v.SetEnvPrefix("SITEMAPGEN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	if err := config.expandPaths(); err != nil {
		return nil, err
	}

	return &config, nil
}

func (c *Config) expandPaths() error {
	var err error
	if c.Generator.RouterFile, err = homedir.Expand(c.Generator.RouterFile); err != nil {
		return err
	}
	if c.Generator.OutputFile, err = homedir.Expand(c.Generator.OutputFile); err != nil {
		return err
	}
	if c.Log.Dir, err = homedir.Expand(c.Log.Dir); err != nil {
		return err
	}
	return nil
}

// Hostnames returns the primary domain followed by the extra hostnames.
func (c *Config) Hostnames() []string {
	hosts := []string{c.Generator.Domain}
	for _, h := range c.Generator.Hostnames {
		if h = strings.TrimSpace(h); h != "" {
			hosts = append(hosts, h)
		}
	}
	return hosts
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}

// Validate checks the settings needed to generate sitemaps.
func (c *Config) Validate() error {
	if c.Generator.RouterFile == "" {
		return errors.New("router file is required")
	}
	if c.Generator.OutputFile == "" {
		return errors.New("output file is required")
	}
	if c.Generator.MaxDepth < 0 {
		return fmt.Errorf("max depth must be >= 0, got %d", c.Generator.MaxDepth)
	}
	for _, h := range c.Hostnames() {
		if err := ValidateHostname(h); err != nil {
			return err
		}
	}
	return nil
}

// ValidateHostname requires an http(s) URL with a host that converts to ASCII.
// The hostname is not rewritten.
func ValidateHostname(hostname string) error {
	if hostname == "" {
		return errors.New("hostname must not be empty")
	}

	u, err := url.Parse(hostname)
	if err != nil {
		return fmt.Errorf("invalid hostname %q: %w", hostname, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid hostname %q: scheme must be http or https", hostname)
	}
	if u.Hostname() == "" {
		return fmt.Errorf("invalid hostname %q: missing host", hostname)
	}
	if _, err := hostProfile.ToASCII(u.Hostname()); err != nil {
		return fmt.Errorf("invalid hostname %q: %w", hostname, err)
	}

	return nil
}
