package config

import (
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/skaura/transeval/internal/pkg/cmdapp"
	"github.com/skaura/transeval/internal/pkg/similarity"
)

// FilePairsMap loads supported m2m language pairs from a yml file
type FilePairsMap struct {
	Path string
	v    *viper.Viper
}

// NewFilePairsMap creates FilePairsMap instance from <path>/m2m.pairs.yml
func NewFilePairsMap(path string) (*FilePairsMap, error) {
	cmdapp.Log.Infof("Init Pairs Map from: %s", path)
	if path == "" {
		return nil, errors.New("No path provided")
	}
	file := filepath.Join(path, "m2m.pairs.yml")
	return newFilePairsMap(file)
}

func newFilePairsMap(file string) (*FilePairsMap, error) {
	if file == "" {
		return nil, errors.New("No pairs map file provided")
	}
	f := FilePairsMap{}
	f.v = viper.New()
	f.v.SetConfigFile(file)
	f.v.SetConfigType("yml")
	err := f.v.ReadInConfig()
	if err != nil {
		return nil, errors.Wrap(err, "Can't read pairs map file: "+file)
	}
	if len(f.v.GetStringSlice("pairs")) == 0 {
		return nil, errors.New("No pairs in file: " + file)
	}

	f.v.WatchConfig()
	f.v.OnConfigChange(func(e fsnotify.Event) {
		cmdapp.Log.Infof("Config reloaded from: %s", file)
	})
	return &f, nil
}

// Contains tells if the pair is in the configured set.
// Pairs are listed as "<in>-<out>", e.g. "en-ko"
func (fp *FilePairsMap) Contains(in, out similarity.Language) bool {
	key := string(in) + "-" + string(out)
	for _, p := range fp.v.GetStringSlice("pairs") {
		if strings.TrimSpace(p) == key {
			return true
		}
	}
	return false
}
