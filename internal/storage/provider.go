package storage

import (
	"livevote/internal/providers"
	"livevote/internal/storage/interfaces"
	"livevote/internal/structures"
)

func NewVoteStatusStore(conf *structures.Config, logger providers.Logger) (interfaces.VoteStatusStoreInterface, error) {
	switch conf.Storage.Driver {
	case "sqlite":
		store, err := NewSQLiteVoteStatusStore(conf.Storage.Dir, conf.Client.DeviceID, logger)
		if err != nil {
			return nil, err
		}
		logger.Infof(providers.TypeApp, "Vote status stored in SQLite under %s", conf.Storage.Dir)
		return store, nil
	default:
		compressor, err := NewZstdCompressor()
		if err != nil {
			return nil, err
		}
		store, err := NewFileVoteStatusStore(conf.Storage.Dir, conf.Client.DeviceID, compressor, logger)
		if err != nil {
			compressor.Close()
			return nil, err
		}
		logger.Infof(providers.TypeApp, "Vote status stored in files under %s", conf.Storage.Dir)
		return store, nil
	}
}
