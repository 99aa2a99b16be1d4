package providers

import (
	"fmt"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"livevote/internal/structures"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const deviceIDFile = "device.id"

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	if flags.EnvFile != "" {
		if err := godotenv.Load(flags.EnvFile); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("unable to load env file: %w", err)
		}
	}

	v := viper.New()
	filename := filepath.Base(flags.ConfigPath)
	v.AddConfigPath(filepath.Dir(flags.ConfigPath))
	v.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	v.SetConfigType("yaml")

	v.SetDefault("backend.timeout", 5*time.Second)
	v.SetDefault("backend.resyncInterval", time.Minute)
	v.SetDefault("storage.driver", "file")
	v.SetDefault("logger.mode", 0644)

	v.BindEnv("backend.baseUrl", "LIVEVOTE_BACKEND_URL")
	v.BindEnv("backend.eventsUrl", "LIVEVOTE_EVENTS_URL")
	v.BindEnv("logger.level", "LIVEVOTE_LOG_LEVEL")
	v.BindEnv("client.deviceId", "LIVEVOTE_DEVICE_ID")
	v.BindEnv("client.admin", "LIVEVOTE_ADMIN")
	v.BindEnv("storage.driver", "LIVEVOTE_STORAGE_DRIVER")
	v.BindEnv("cache.enabled", "LIVEVOTE_CACHE_ENABLED")

	err := v.ReadInConfig()
	if err != nil {
		return nil, err
	}

	err = v.Unmarshal(&conf)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	conf.Backend.BaseURL = strings.TrimRight(conf.Backend.BaseURL, "/")

	cnfValidator := NewCnfValidator(&conf)
	err = cnfValidator.Validate()
	if err != nil {
		return nil, err
	}

	if conf.Client.DeviceID == "" {
		conf.Client.DeviceID, err = loadOrCreateDeviceID(conf.Storage.Dir)
		if err != nil {
			return nil, err
		}
	}

	conf.AppName = "LiveVote"
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode

	return &conf, nil
}

// loadOrCreateDeviceID keeps the device identity stable across restarts,
// since the vote status entry is keyed by it.
func loadOrCreateDeviceID(dir string) (string, error) {
	path := filepath.Join(dir, deviceIDFile)
	data, err := os.ReadFile(path)
	if err == nil {
		if id := strings.TrimSpace(string(data)); id != "" {
			return id, nil
		}
	} else if !os.IsNotExist(err) {
		return "", fmt.Errorf("unable to read device id: %w", err)
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("unable to create storage dir: %w", err)
	}
	id := uuid.NewString()
	if err := os.WriteFile(path, []byte(id+"\n"), 0644); err != nil {
		return "", fmt.Errorf("unable to persist device id: %w", err)
	}
	return id, nil
}
