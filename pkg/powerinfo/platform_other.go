//go:build !linux && !darwin

package powerinfo

func newPlatform() platform {
	return fallbackPlatform{}
}
