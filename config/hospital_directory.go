package config

import (
	"fmt"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// HospitalDirectoryFile reads a hospital directory file (YAML, JSON or any
// format viper understands) holding a `hospitals` map of id -> base URL.
type HospitalDirectoryFile struct {
	v *viper.Viper
}

func OpenHospitalDirectoryFile(path string) (*HospitalDirectoryFile, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read hospital directory %s: %w", path, err)
	}
	return &HospitalDirectoryFile{v: v}, nil
}

// Hospitals returns the current id -> base URL table from the file.
func (f *HospitalDirectoryFile) Hospitals() map[string]string {
	return f.v.GetStringMapString("hospitals")
}

// Watch invokes onChange with the re-read table every time the file changes
// on disk.
func (f *HospitalDirectoryFile) Watch(onChange func(hospitals map[string]string)) {
	f.v.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		onChange(f.Hospitals())
	})
	f.v.WatchConfig()
}
