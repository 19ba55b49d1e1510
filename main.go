package main

import (
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/AgrI-Mitra/bff/agent"
	"github.com/AgrI-Mitra/bff/config"
	"github.com/AgrI-Mitra/bff/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type cfg struct {
	config.Config
}
type cli struct {
	cfg cfg
}

func setupFlags(cmd *cobra.Command) error {
	cmd.Flags().String("config-file", "", "Path to config file.")
	cmd.Flags().String("redis-addr", "localhost:6379", "comma separated list of redis host:port")
	cmd.Flags().String("namespace", "agrimitra", "namespace used in storage")
	cmd.Flags().Int("http-port", 8080, "htt port for rest endpoints")
	cmd.Flags().String("storage-impl", "redis", "implementation of underline storage")
	cmd.Flags().String("aitools-base-url", "http://localhost:8000", "base url of the ai tools service")
	cmd.Flags().String("kisan-base-url", "https://pmkisan.gov.in", "base url of the pm-kisan portal")
	cmd.Flags().String("kisan-token", "", "auth token for the pm-kisan portal")
	cmd.Flags().String("identifier-order", "Mobile,MobileAadhar,Aadhar,Ben_id", "comma separated identifier shapes in match order")
	cmd.Flags().String("transcript-file", "", "file to write conversation transcripts, empty disables")
	cmd.Flags().Bool("debug", false, "enable debug logging")
	return viper.BindPFlags(cmd.Flags())
}

func (c *cli) setupConfig(cmd *cobra.Command, args []string) error {
	var err error

	configFile, err := cmd.Flags().GetString("config-file")
	if err != nil {
		return err
	}
	viper.SetConfigFile(configFile)

	if err = viper.ReadInConfig(); err != nil {
		// it's ok if config file doesn't exist
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return err
		}
	}

	c.cfg.RedisConfig.Addrs = strings.Split(viper.GetString("redis-addr"), ",")
	c.cfg.RedisConfig.Namespace = viper.GetString("namespace")
	c.cfg.HttpPort = viper.GetInt("http-port")
	c.cfg.StorageType = config.StorageType(viper.GetString("storage-impl"))
	c.cfg.AiToolsBaseUrl = viper.GetString("aitools-base-url")
	c.cfg.KisanBaseUrl = viper.GetString("kisan-base-url")
	c.cfg.KisanToken = viper.GetString("kisan-token")
	c.cfg.IdentifierOrder = strings.Split(viper.GetString("identifier-order"), ",")
	c.cfg.TranscriptFile = viper.GetString("transcript-file")
	c.cfg.Debug = viper.GetBool("debug")
	return nil
}

func (c *cli) run(cmd *cobra.Command, args []string) error {
	logger.InitLogger(c.cfg.Debug)
	agent, err := agent.New(c.cfg.Config)
	if err != nil {
		panic(err)
	}
	err = agent.Start()
	if err != nil {
		panic(err)
	}
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	<-sigc
	return agent.Shutdown()
}

func main() {
	cli := &cli{}

	cmd := &cobra.Command{
		Use:     "bff",
		PreRunE: cli.setupConfig,
		RunE:    cli.run,
	}

	if err := setupFlags(cmd); err != nil {
		log.Fatal(err)
	}

	if err := cmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
