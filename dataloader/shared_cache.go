package dataloader

// NewSharedDataLoaders creates train and validation loaders over one
// shared sample cache, sized to hold both datasets unless CacheSize
// says otherwise. The train loader shuffles; the validation loader
// does not.
func NewSharedDataLoaders(trainDataset, valDataset Dataset, config Config) (*DataLoader, *DataLoader) {
	cacheSize := config.CacheSize
	if cacheSize == 0 {
		cacheSize = trainDataset.Len() + valDataset.Len()
	}

	sharedCache := NewCache(cacheSize)

	trainConfig := config
	trainConfig.Cache = sharedCache
	trainConfig.Shuffle = true
	trainLoader := NewDataLoader(trainDataset, trainConfig)

	valConfig := config
	valConfig.Cache = sharedCache
	valConfig.Shuffle = false
	valLoader := NewDataLoader(valDataset, valConfig)

	return trainLoader, valLoader
}
