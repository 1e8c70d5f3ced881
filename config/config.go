// Package config loads the settings of an experiment: where the CogServer lives and how to start it, and where
// time series are exported to.
package config

import (
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix of the environment variables overriding the configuration file, eg. COGEXP_REST_PORT
const EnvPrefix = "COGEXP"

// Config holds every user-definable parameter.
// Values come from Defaults, then from an optional YAML file, then from the environment.
type Config struct {
	// run the CogServer and RelEx inside Vagrant VMs, identified by their `vagrant global-status` ids
	UseVagrant     bool   `yaml:"use_vagrant" envconfig:"USE_VAGRANT"`
	VagrantID      string `yaml:"vagrant_id" envconfig:"VAGRANT_ID"`
	VagrantIDRelex string `yaml:"vagrant_id_relex" envconfig:"VAGRANT_ID_RELEX"`

	// CogServer REST API
	RestHost    string        `yaml:"rest_host" envconfig:"REST_HOST"`
	RestPort    int           `yaml:"rest_port" envconfig:"REST_PORT"`
	RestPath    string        `yaml:"rest_path" envconfig:"REST_PATH"`
	HTTPTimeout time.Duration `yaml:"http_timeout" envconfig:"HTTP_TIMEOUT"`

	// CogServer line-oriented shell, used to start the REST API
	ShellPort    int    `yaml:"shell_port" envconfig:"SHELL_PORT"`
	RestAPIStart string `yaml:"restapi_start" envconfig:"RESTAPI_START"`

	// how long to wait for the server processes to come up
	InitDelay time.Duration `yaml:"init_delay" envconfig:"INIT_DELAY"`

	// process management, empty values are resolved by ResolveDefaults
	CogServerStart string `yaml:"cogserver_start" envconfig:"COGSERVER_START"`
	CogServerStop  string `yaml:"cogserver_stop" envconfig:"COGSERVER_STOP"`
	SourceFolder   string `yaml:"source_folder" envconfig:"SOURCE_FOLDER"`
	BuildFolder    string `yaml:"build_folder" envconfig:"BUILD_FOLDER"`
	RelexStart     string `yaml:"relex_start" envconfig:"RELEX_START"`
	RelexStop      string `yaml:"relex_stop" envconfig:"RELEX_STOP"`

	// document store
	ElasticURL      string `yaml:"elastic_url" envconfig:"ELASTIC_URL"`
	ElasticUsername string `yaml:"elastic_username" envconfig:"ELASTIC_USERNAME"`
	ElasticPassword string `yaml:"elastic_password" envconfig:"ELASTIC_PASSWORD"`
	Database        string `yaml:"database" envconfig:"DATABASE"`
	Collection      string `yaml:"collection" envconfig:"COLLECTION"`

	// experiment shell
	Listen         string `yaml:"listen" envconfig:"LISTEN"`
	MaxConnections int    `yaml:"max_connections" envconfig:"MAX_CONNECTIONS"`
	MetricsListen  string `yaml:"metrics_listen" envconfig:"METRICS_LISTEN"`

	LogLevel string `yaml:"log_level" envconfig:"LOG_LEVEL"`
}

// Load builds a Config from defaults, the YAML file at `path` (skipped if empty) and the environment.
func Load(path string) (*Config, error) {
	cfg := Defaults()
	if path != "" {
		b, err := ioutil.ReadFile(path)
		if err != nil {
			return nil, errors.Wrap(err, "reading configuration file")
		}
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return nil, errors.Wrapf(err, "parsing %s", path)
		}
	}
	// only variables present in the environment are set, so they win over the file
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, errors.Wrap(err, "processing environment variables")
	}
	if err := cfg.ResolveDefaults(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Defaults returns the configuration of a local, non-Vagrant setup.
func Defaults() Config {
	return Config{
		VagrantID:      "XXXX",
		VagrantIDRelex: "XXXX",
		RestHost:       "127.0.0.1",
		RestPort:       5000,
		RestPath:       "/api/v1.1/",
		HTTPTimeout:    30 * time.Second,
		ShellPort:      17001,
		RestAPIStart:   "restapi.Start",
		InitDelay:      3 * time.Second,
		RelexStart:     "cd ~/relex && ./opencog-server.sh",
		RelexStop:      "pkill opencog-server",
		ElasticURL:     "local",
		Database:       "attention-timeseries",
		Collection:     "points",
		Listen:         ":8234",
		MaxConnections: 8,
		LogLevel:       "info",
	}
}

// ResolveDefaults fills in the process management settings, which depend on whether Vagrant is used, and validates
// the rest.
func (c *Config) ResolveDefaults() error {
	home, _ := os.UserHomeDir()
	if c.UseVagrant {
		setDefault(&c.CogServerStart, "cd ~/opencog/build && ./opencog/server/cogserver")
		setDefault(&c.CogServerStop, "pkill cogserver")
		setDefault(&c.SourceFolder, "/home/vagrant/opencog/opencog/")
		setDefault(&c.BuildFolder, "/home/vagrant/opencog/build")
	} else {
		setDefault(&c.CogServerStart, "./opencog/server/cogserver")
		setDefault(&c.CogServerStop, "pkill cogserver")
		setDefault(&c.SourceFolder, filepath.Join(home, "opencog", "opencog")+"/")
		setDefault(&c.BuildFolder, filepath.Join(home, "opencog", "build"))
	}
	if c.RestPort <= 0 || c.ShellPort <= 0 {
		return fmt.Errorf("invalid ports: rest %d, shell %d", c.RestPort, c.ShellPort)
	}
	if !strings.HasPrefix(c.RestPath, "/") {
		c.RestPath = "/" + c.RestPath
	}
	if !strings.HasSuffix(c.RestPath, "/") {
		c.RestPath += "/"
	}
	if c.UseVagrant && (c.VagrantID == "" || c.VagrantID == "XXXX") {
		return errors.New("vagrant mode requires VAGRANT_ID")
	}
	return nil
}

// RestURL is the base URL of the CogServer REST API, eg. http://127.0.0.1:5000/api/v1.1/
func (c Config) RestURL() string {
	return fmt.Sprintf("http://%s:%d%s", c.RestHost, c.RestPort, c.RestPath)
}

// ShellAddr is the address of the CogServer line-oriented shell.
func (c Config) ShellAddr() string {
	return fmt.Sprintf("%s:%d", c.RestHost, c.ShellPort)
}

func setDefault(field *string, value string) {
	if *field == "" {
		*field = value
	}
}
