package systems

import (
	"fmt"

	"github.com/spaghettifunk/anima-core/engine/core"
	"github.com/spaghettifunk/anima-core/engine/renderer/components"
)

const DEFAULT_CAMERA_NAME string = "default"

type cameraLookup struct {
	viewer         components.Viewer
	referenceCount uint32
}

/** @brief The camera system configuration. */
type CameraSystemConfig struct {
	/**
	 * @brief NOTE: The maximum number of cameras that can be managed by
	 * the system.
	 */
	MaxCameraCount uint16
}

/**
 * @brief Named cameras plus the one currently used to build the frame
 * environment. Cameras stay registered while at least one owner holds them.
 */
type CameraSystem struct {
	Config *CameraSystemConfig
	lookup map[string]*cameraLookup
	// A default, non-registered camera that always exists as a fallback.
	DefaultCamera *components.FirstPersonCamera
	active        string
}

func NewCameraSystem(config *CameraSystemConfig) (*CameraSystem, error) {
	if config.MaxCameraCount == 0 {
		err := fmt.Errorf("func NewCameraSystem - config.MaxCameraCount must be > 0")
		core.LogError(err.Error())
		return nil, err
	}
	return &CameraSystem{
		Config:        config,
		lookup:        make(map[string]*cameraLookup, config.MaxCameraCount),
		DefaultCamera: components.NewFirstPersonCamera(nil, components.DefaultProjection()),
		active:        DEFAULT_CAMERA_NAME,
	}, nil
}

func (cs *CameraSystem) Shutdown() error {
	cs.lookup = make(map[string]*cameraLookup)
	cs.active = DEFAULT_CAMERA_NAME
	return nil
}

/**
 * @brief Registers a camera under name with a reference count of one.
 */
func (cs *CameraSystem) Register(name string, viewer components.Viewer) error {
	if name == DEFAULT_CAMERA_NAME {
		return fmt.Errorf("camera name %q is reserved", name)
	}
	if _, ok := cs.lookup[name]; ok {
		return fmt.Errorf("camera %q is already registered", name)
	}
	if len(cs.lookup) >= int(cs.Config.MaxCameraCount) {
		return fmt.Errorf("camera system is full (%d cameras), adjust the camera system config to allow more", cs.Config.MaxCameraCount)
	}
	cs.lookup[name] = &cameraLookup{viewer: viewer, referenceCount: 1}
	return nil
}

/**
 * @brief Acquires a camera by name and increments its reference count.
 */
func (cs *CameraSystem) Acquire(name string) (components.Viewer, error) {
	if name == DEFAULT_CAMERA_NAME {
		return cs.DefaultCamera, nil
	}
	entry, ok := cs.lookup[name]
	if !ok {
		return nil, fmt.Errorf("camera %q is not registered", name)
	}
	entry.referenceCount++
	return entry.viewer, nil
}

/**
 * @brief Releases a camera with the given name. When the count reaches 0 the
 * camera is dropped, and if it was active the default camera takes over.
 */
func (cs *CameraSystem) Release(name string) {
	if name == DEFAULT_CAMERA_NAME {
		core.LogDebug("Cannot release default camera. Nothing was done.")
		return
	}
	entry, ok := cs.lookup[name]
	if !ok {
		core.LogWarn("camera %q release failed lookup. Nothing was done.", name)
		return
	}
	entry.referenceCount--
	if entry.referenceCount < 1 {
		delete(cs.lookup, name)
		if cs.active == name {
			cs.active = DEFAULT_CAMERA_NAME
		}
	}
}

func (cs *CameraSystem) SetActive(name string) error {
	if _, ok := cs.lookup[name]; !ok && name != DEFAULT_CAMERA_NAME {
		return fmt.Errorf("camera %q is not registered", name)
	}
	cs.active = name
	return nil
}

func (cs *CameraSystem) ActiveName() string {
	return cs.active
}

// Active returns the camera used for rendering.
func (cs *CameraSystem) Active() components.Viewer {
	if entry, ok := cs.lookup[cs.active]; ok {
		return entry.viewer
	}
	return cs.DefaultCamera
}

/**
 * @brief Gets a pointer to the default camera.
 *
 * @return A pointer to the default camera.
 */
func (cs *CameraSystem) GetDefault() *components.FirstPersonCamera {
	return cs.DefaultCamera
}
