package playback

import (
	"os/exec"

	log "github.com/sirupsen/logrus"
)

// ExecOpener shells out to an external command (xdg-open by default) to
// hand the URL to whatever viewer the host has configured.
type ExecOpener struct {
	Command string
}

func NewExecOpener(command string) *ExecOpener {
	if command == "" {
		command = "xdg-open"
	}
	return &ExecOpener{Command: command}
}

func (o *ExecOpener) OpenURL(url string) <-chan error {
	result := make(chan error, 1)
	go func() {
		cmd := exec.Command(o.Command, url)
		output, err := cmd.CombinedOutput()
		if err != nil {
			log.WithFields(log.Fields{
				"module": "playback",
				"error":  err,
				"output": string(output),
			}).Error("open command failed")
		}
		result <- err
	}()
	return result
}
