package systems

import (
	"github.com/spaghettifunk/anima-core/engine/config"
)

type SystemManager struct {
	CameraSystem    *CameraSystem
	JobSystem       *JobSystem
	CollisionSystem *CollisionSystem
}

func NewSystemManager(cfg *config.Config) (*SystemManager, error) {
	cs, err := NewCameraSystem(&CameraSystemConfig{
		MaxCameraCount: 100,
	})
	if err != nil {
		return nil, err
	}

	js, err := NewJobSystem(cfg.Engine.Workers, cfg.Engine.JobQueueSize)
	if err != nil {
		return nil, err
	}

	return &SystemManager{
		CameraSystem:    cs,
		JobSystem:       js,
		CollisionSystem: NewCollisionSystem(js, cfg.Collision.MaxIterations),
	}, nil
}

// ApplyConfig picks up settings that can change while running.
func (sm *SystemManager) ApplyConfig(cfg *config.Config) {
	sm.CollisionSystem.SetMaxIterations(cfg.Collision.MaxIterations)
}

func (sm *SystemManager) Shutdown() error {
	if err := sm.CameraSystem.Shutdown(); err != nil {
		return err
	}
	if err := sm.JobSystem.Shutdown(); err != nil {
		return err
	}
	return nil
}
