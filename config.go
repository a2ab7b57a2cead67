package wat

import (
	"github.com/magiconair/properties"
	"github.com/pkg/errors"
	"os"
)

// Config is the environment sessions run in: where the corpus and artifacts live and which classes may be learnt.
// It is read from a .properties file, e.g.
//
//	artifacts = data/classifier
//	tags = data/filetags.json
//	documents = data/documents
//	seed = 10
//	classes = age;agency;healthspa;multi;race;typical;offtopic
//	cache.tokens = 4096
type Config struct {
	Artifacts  string   `properties:"artifacts,default=data/classifier"`
	Tags       string   `properties:"tags,default=data/filetags.json"`
	Documents  string   `properties:"documents,default=data/documents"`
	Seed       int64    `properties:"seed,default=10"`
	Classes    []string `properties:"classes,default=age;agency;healthspa;multi;race;typical;offtopic"`
	TokenCache int      `properties:"cache.tokens,default=4096"`
}

// DefaultConfig is the configuration used when there is no configuration file.
func DefaultConfig() Config {
	c, err := decodeConfig(properties.NewProperties())
	if err != nil {
		panic(err)
	}
	return c
}

// LoadConfig reads a configuration file. Keys missing from the file take their default values, and a path that does
// not exist gives the default configuration.
func LoadConfig(path string) (Config, error) {
	if len(path) == 0 {
		return DefaultConfig(), nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}
	p, err := properties.LoadFile(path, properties.UTF8)
	if err != nil {
		return Config{}, errors.Wrap(err, "reading configuration")
	}
	c, err := decodeConfig(p)
	if err != nil {
		return Config{}, errors.Wrapf(err, "decoding configuration %s", path)
	}
	return c, nil
}

func decodeConfig(p *properties.Properties) (Config, error) {
	var c Config
	err := p.Decode(&c)
	return c, err
}

// HasClass reports whether class is one of the configured classes.
func (c Config) HasClass(class string) bool {
	for _, k := range c.Classes {
		if k == class {
			return true
		}
	}
	return false
}
