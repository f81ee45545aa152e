package engine

type ApplicationConfig struct {
	// Window starting position x axis, if applicable.
	StartPosX uint32
	// Window starting position y axis, if applicable.
	StartPosY uint32
	// Window starting width, if applicable.
	StartWidth uint32
	// Window starting height, if applicable.
	StartHeight uint32
	// The application name used in windowing, if applicable.
	Name string
	// Configuration file watched for changes while running. Empty disables
	// hot reload.
	ConfigPath string
}

// AspectRatio of the current framebuffer, 1 when the height is unknown.
func (c *ApplicationConfig) AspectRatio() float32 {
	if c.StartHeight == 0 {
		return 1
	}
	return float32(c.StartWidth) / float32(c.StartHeight)
}
