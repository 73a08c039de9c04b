package powerinfo

func newPlatform() platform {
	return &sysfsPlatform{root: sysfsPowerSupply}
}
