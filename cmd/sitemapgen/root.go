package main

import (
	"github.com/rajlabs/route-sitemap/config"
	"github.com/rajlabs/route-sitemap/internal/generator"
	"github.com/rajlabs/route-sitemap/internal/storage"
	"github.com/rajlabs/route-sitemap/internal/utils"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// cli holds the state shared by the command tree. Other than cfgFile, flag
// values are read through viper.
type cli struct {
	cfgFile string
	v       *viper.Viper
}

func newRootCmd() *cobra.Command {
	c := &cli{v: viper.New()}

	rootCmd := &cobra.Command{
		Use:   "sitemapgen",
		Short: "Generate sitemap.xml from a client-side router configuration",
		Long: `sitemapgen reads a router definition file (for example a React Router
routers.jsx), extracts every "path: <route>" entry and writes one sitemap
document per configured hostname.`,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE:         c.runGenerate,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&c.cfgFile, "config", "",
		"config file (default is ./config.yaml, ./config/config.yaml or $HOME/config.yaml)")
	flags.StringP("router-file", "f", "", "Path to the router file")
	flags.StringP("domain", "d", config.DefaultDomain, "Domain name for the sitemap")
	flags.StringP("output-file", "o", config.DefaultOutputFile, "Path to output the sitemap.xml")
	flags.StringSliceP("hostname", "H", nil,
		"Additional hostname; written next to the output file as sitemap1.xml, sitemap2.xml, ...")
	flags.Int("max-depth", config.DefaultMaxDepth, "How many levels of nested path: matches to re-scan")
	flags.String("database", "", "Run history database (SQLite path or postgres:// URL)")
	flags.BoolP("verbose", "v", false, "Log every extracted route")

	rootCmd.AddCommand(
		c.newServeCmd(),
		c.newInspectCmd(),
		c.newHistoryCmd(),
	)

	return rootCmd
}

func (c *cli) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	if err := config.BindFlags(c.v, cmd.Flags()); err != nil {
		return nil, err
	}
	return config.LoadConfig(c.v, c.cfgFile)
}

func (c *cli) newLogger(cmd *cobra.Command, cfg *config.Config) (*utils.RunLogger, error) {
	return utils.NewRunLogger("sitemap", cfg.Log.Dir, cmd.OutOrStdout(), cfg.Log.Verbose)
}

// openStore returns nil when no database is configured or it cannot be opened;
// run history never blocks generation.
func openStore(cfg *config.Config, logger *utils.RunLogger) storage.Store {
	if cfg.Database.URL == "" {
		return nil
	}

	store, err := storage.Open(cfg.Database.URL)
	if err != nil {
		logger.LogError("Failed to open run history: %v", err)
		return nil
	}
	return store
}

func (c *cli) runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := c.loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := c.newLogger(cmd, cfg)
	if err != nil {
		return err
	}
	defer logger.Close()

	store := openStore(cfg, logger)
	if store != nil {
		defer store.Close()
	}

	_, err = generator.New(generator.OptionsFromConfig(cfg), store, logger).Run(cmd.Context())
	return err
}
