package launcher

import (
	"log"
	"os/exec"
)

// Spawner starts a program without waiting for it.
type Spawner interface {
	Start(name string, args ...string) error
}

// DetachedSpawner starts programs in their own session with no stdio
// attached. Exit status is never observed.
type DetachedSpawner struct{}

func (DetachedSpawner) Start(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	detach(cmd)
	if err := cmd.Start(); err != nil {
		return err
	}
	log.Printf("[DEBUG] Start: %s %v (PID: %d)", name, args, cmd.Process.Pid)
	// Reap in the background so long-lived hosts don't collect zombies.
	go func() { _ = cmd.Wait() }()
	return nil
}
