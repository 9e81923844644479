package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(viper.New(), writeConfig(t, "generator:\n  routerfile: src/routers.jsx\n"))
	require.NoError(t, err)

	assert.Equal(t, "src/routers.jsx", cfg.Generator.RouterFile)
	assert.Equal(t, DefaultDomain, cfg.Generator.Domain)
	assert.Equal(t, DefaultOutputFile, cfg.Generator.OutputFile)
	assert.Equal(t, DefaultMaxDepth, cfg.Generator.MaxDepth)
	assert.Equal(t, DefaultServerPort, cfg.Server.Port)
	assert.Empty(t, cfg.Database.URL)
	assert.Equal(t, []string{DefaultDomain}, cfg.Hostnames())
	assert.Equal(t, ":8080", cfg.GetServerAddr())
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfigFile(t *testing.T) {
	path := writeConfig(t, `
generator:
  routerfile: routers.jsx
  domain: https://example.com
  outputfile: out/sitemap.xml
  maxdepth: 2
  hostnames:
    - https://www.example.com
    - "  "
database:
  url: history.db
server:
  port: 9000
`)

	cfg, err := LoadConfig(viper.New(), path)
	require.NoError(t, err)

	assert.Equal(t, "out/sitemap.xml", cfg.Generator.OutputFile)
	assert.Equal(t, 2, cfg.Generator.MaxDepth)
	assert.Equal(t, "history.db", cfg.Database.URL)
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, []string{"https://example.com", "https://www.example.com"}, cfg.Hostnames())
}

func TestLoadConfigMissingExplicitFile(t *testing.T) {
	_, err := LoadConfig(viper.New(), filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestFlagsOverrideConfigFile(t *testing.T) {
	path := writeConfig(t, "generator:\n  routerfile: a.jsx\n  domain: https://example.com\n")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.StringP("router-file", "f", "", "")
	flags.StringP("domain", "d", DefaultDomain, "")
	flags.StringSliceP("hostname", "H", nil, "")
	flags.Int("max-depth", DefaultMaxDepth, "")
	require.NoError(t, flags.Parse([]string{"-f", "b.jsx", "-H", "https://two.example", "-H", "https://three.example"}))

	v := viper.New()
	require.NoError(t, BindFlags(v, flags))
	cfg, err := LoadConfig(v, path)
	require.NoError(t, err)

	assert.Equal(t, "b.jsx", cfg.Generator.RouterFile)
	// Unchanged flags do not shadow the config file.
	assert.Equal(t, "https://example.com", cfg.Generator.Domain)
	assert.Equal(t, []string{"https://example.com", "https://two.example", "https://three.example"}, cfg.Hostnames())
}

func TestEnvOverridesDefaults(t *testing.T) {
	t.Setenv("SITEMAPGEN_GENERATOR_DOMAIN", "https://env.example")
	t.Setenv("SITEMAPGEN_GENERATOR_ROUTERFILE", "env.jsx")

	cfg, err := LoadConfig(viper.New(), writeConfig(t, "server:\n  port: 1\n"))
	require.NoError(t, err)
	assert.Equal(t, "https://env.example", cfg.Generator.Domain)
	assert.Equal(t, "env.jsx", cfg.Generator.RouterFile)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		c := &Config{}
		c.Generator.RouterFile = "routers.jsx"
		c.Generator.Domain = "https://example.com"
		c.Generator.OutputFile = "public/sitemap.xml"
		c.Generator.MaxDepth = 1
		return c
	}

	assert.NoError(t, valid().Validate())

	c := valid()
	c.Generator.RouterFile = ""
	assert.Error(t, c.Validate())

	c = valid()
	c.Generator.OutputFile = ""
	assert.Error(t, c.Validate())

	c = valid()
	c.Generator.MaxDepth = -1
	assert.Error(t, c.Validate())

	c = valid()
	c.Generator.Domain = ""
	assert.Error(t, c.Validate())

	c = valid()
	c.Generator.Hostnames = []string{"ftp://example.com"}
	assert.Error(t, c.Validate())
}

func TestValidateHostname(t *testing.T) {
	for _, h := range []string{
		"https://utility.rajlabs.in",
		"http://localhost:3000",
		"https://bücher.example",
		"https://my_app.internal",
		"http://web_app:3000",
		"http://127.0.0.1:8080",
	} {
		assert.NoError(t, ValidateHostname(h), h)
	}

	for _, h := range []string{
		"",
		"utility.rajlabs.in",
		"ftp://example.com",
		"https://",
		"https://exa mple.com",
	} {
		assert.Error(t, ValidateHostname(h), h)
	}
}
