package annotate

import (
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
)

// setupEnvironment prepares everything the workers need: the extracted
// worker script, a working interpreter, a dedicated venv, and the pinned
// requirements installed into it. Each step is skipped when already done,
// so restarts are cheap.
func (p *Pool) setupEnvironment() error {
	if err := p.extractScriptIfNeeded(); err != nil {
		return fmt.Errorf("failed to extract worker script: %w", err)
	}

	if err := p.checkPython(); err != nil {
		return fmt.Errorf("python check failed: %w", err)
	}

	if err := p.createVenv(); err != nil {
		return fmt.Errorf("failed to create virtual environment: %w", err)
	}

	if err := p.installRequirements(); err != nil {
		return fmt.Errorf("failed to install requirements: %w", err)
	}

	return nil
}

// extractScriptIfNeeded writes the embedded worker script and requirements
// file next to the venv. Existing files are rewritten so upgrades of this
// binary propagate to the extracted copies.
func (p *Pool) extractScriptIfNeeded() error {
	dir := filepath.Dir(p.script)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create directory %s: %w", dir, err)
	}

	if err := os.WriteFile(p.script, []byte(workerScript), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", p.script, err)
	}

	reqPath := filepath.Join(dir, "requirements.txt")
	if err := os.WriteFile(reqPath, []byte(requirementsTxt), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", reqPath, err)
	}

	return nil
}

func (p *Pool) checkPython() error {
	path, err := exec.LookPath(p.cfg.PythonBin)
	if err != nil {
		return fmt.Errorf("%s not found in PATH: %w", p.cfg.PythonBin, err)
	}

	out, err := exec.Command(path, "--version").CombinedOutput()
	if err != nil {
		return fmt.Errorf("%s --version: %w", path, err)
	}

	log.Printf("Using %s (%s)", path, string(out))
	return nil
}

func (p *Pool) createVenv() error {
	venvPython := filepath.Join(p.venv, "bin", "python")
	if _, err := os.Stat(venvPython); err == nil {
		return nil
	}

	log.Printf("Creating virtual environment at %s", p.venv)
	out, err := exec.Command(p.cfg.PythonBin, "-m", "venv", p.venv).CombinedOutput()
	if err != nil {
		return fmt.Errorf("python -m venv: %w (output: %s)", err, string(out))
	}

	return nil
}

// installRequirements runs pip against the extracted requirements file.
// A marker inside the venv records success so subsequent starts skip the
// install entirely.
func (p *Pool) installRequirements() error {
	marker := filepath.Join(p.venv, ".requirements-installed")
	if _, err := os.Stat(marker); err == nil {
		return nil
	}

	pip := filepath.Join(p.venv, "bin", "pip")
	reqPath := filepath.Join(filepath.Dir(p.script), "requirements.txt")

	log.Printf("Installing annotator requirements (this downloads the spaCy model on first run)")
	out, err := exec.Command(pip, "install", "-r", reqPath).CombinedOutput()
	if err != nil {
		return fmt.Errorf("pip install: %w (output: %s)", err, string(out))
	}

	if err := os.WriteFile(marker, []byte("ok\n"), 0o644); err != nil {
		return fmt.Errorf("write marker: %w", err)
	}

	return nil
}
