package annotate

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"time"

	"github.com/jonathan/resume-reviewer/internal/schemas"
	schemadefs "github.com/jonathan/resume-reviewer/schemas"
)

const (
	defaultModel          = "en_core_web_sm"
	defaultWorkers        = 2
	defaultPythonBin      = "python3"
	defaultStartupTimeout = 2 * time.Minute

	// maxResponseBytes bounds one annotation response line. Long resumes
	// produce token arrays well past bufio.Scanner's default 64KB limit.
	maxResponseBytes = 8 * 1024 * 1024
)

// Config holds annotator pool configuration.
type Config struct {
	Model          string        // spaCy model name
	Workers        int           // number of worker subprocesses
	ConfigDir      string        // directory for the venv and extracted script
	PythonBin      string        // interpreter used to build the venv
	StartupTimeout time.Duration // per-worker ready handshake timeout
}

type task struct {
	text   string
	result chan<- taskResult
}

type taskResult struct {
	annotation *Annotation
	err        error
}

// Pool is an Annotator backed by long-lived spaCy worker subprocesses.
// Requests are serialized through a shared queue; each worker owns one
// process and answers one line-delimited JSON request at a time.
type Pool struct {
	cfg       Config
	script    string
	venv      string
	taskQueue chan task
	workers   []*worker
	wg        sync.WaitGroup
}

var _ Annotator = (*Pool)(nil)

type worker struct {
	id      int
	process *exec.Cmd
	stdin   io.WriteCloser
	stdout  io.ReadCloser
	scanner *bufio.Scanner
	mu      sync.Mutex
}

type annotateRequest struct {
	Text string `json:"text"`
}

// NewPool creates a pool for the given configuration. The pool is not
// usable until Initialize succeeds.
func NewPool(cfg Config) *Pool {
	if cfg.Model == "" {
		cfg.Model = defaultModel
	}
	if cfg.Workers <= 0 {
		cfg.Workers = defaultWorkers
	}
	if cfg.PythonBin == "" {
		cfg.PythonBin = defaultPythonBin
	}
	if cfg.StartupTimeout <= 0 {
		cfg.StartupTimeout = defaultStartupTimeout
	}

	pythonDir := filepath.Join(cfg.ConfigDir, "python")
	return &Pool{
		cfg:       cfg,
		script:    filepath.Join(pythonDir, "spacy_worker.py"),
		venv:      filepath.Join(cfg.ConfigDir, "venv"),
		taskQueue: make(chan task, 100),
	}
}

// Initialize prepares the Python environment and starts every worker.
// Workers are started synchronously so a broken environment fails here,
// not on the first request.
func (p *Pool) Initialize() error {
	log.Printf("Initializing spaCy annotator (model=%s, workers=%d)", p.cfg.Model, p.cfg.Workers)

	if err := p.setupEnvironment(); err != nil {
		return &StartupError{Stage: "environment setup", Cause: err}
	}

	for i := 0; i < p.cfg.Workers; i++ {
		w, err := p.startWorker(i)
		if err != nil {
			p.closeWorkers()
			return &StartupError{Stage: "worker startup", Cause: err}
		}
		p.workers = append(p.workers, w)
	}

	for _, w := range p.workers {
		p.wg.Add(1)
		go p.serve(w)
	}

	log.Printf("spaCy annotator initialized successfully")
	return nil
}

// Annotate sends the text to an available worker and returns its annotation.
// Safe for concurrent use.
func (p *Pool) Annotate(ctx context.Context, text string) (*Annotation, error) {
	result := make(chan taskResult, 1)

	select {
	case p.taskQueue <- task{text: text, result: result}:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	select {
	case res := <-result:
		return res.annotation, res.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// HealthCheck round-trips a canary text through a worker.
func (p *Pool) HealthCheck(ctx context.Context) error {
	if _, err := p.Annotate(ctx, "health check"); err != nil {
		return fmt.Errorf("annotator health check failed: %w", err)
	}
	return nil
}

// Close terminates the workers and waits for their serve loops to exit.
func (p *Pool) Close() error {
	close(p.taskQueue)
	p.wg.Wait()
	p.closeWorkers()
	return nil
}

func (p *Pool) closeWorkers() {
	for _, w := range p.workers {
		w.close()
	}
}

// serve feeds queued tasks to one worker. A pipe-level failure retires the
// worker; a per-request annotation error is returned to the caller and the
// worker keeps serving.
func (p *Pool) serve(w *worker) {
	defer p.wg.Done()

	for t := range p.taskQueue {
		ann, err := w.processTask(t.text)
		t.result <- taskResult{annotation: ann, err: err}

		if err != nil {
			var annErr *AnnotationError
			if !errors.As(err, &annErr) {
				log.Printf("spaCy worker %d stopped: %v", w.id, err)
				w.close()
				return
			}
		}
	}
}

func (p *Pool) startWorker(id int) (*worker, error) {
	python := filepath.Join(p.venv, "bin", "python")

	cmd := exec.Command(python, p.script)
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("stdin pipe: %w", err)
	}

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		stdin.Close()
		return nil, fmt.Errorf("stdout pipe: %w", err)
	}

	cmd.Stderr = os.Stderr

	if err := cmd.Start(); err != nil {
		stdin.Close()
		stdout.Close()
		return nil, fmt.Errorf("start process: %w", err)
	}

	w := &worker{
		id:      id,
		process: cmd,
		stdin:   stdin,
		stdout:  stdout,
		scanner: bufio.NewScanner(stdout),
	}
	w.scanner.Buffer(make([]byte, 0, 64*1024), maxResponseBytes)

	configJSON, err := json.Marshal(map[string]any{"model": p.cfg.Model})
	if err != nil {
		w.close()
		return nil, fmt.Errorf("marshal config: %w", err)
	}

	configJSON = append(configJSON, '\n')
	if _, err := w.stdin.Write(configJSON); err != nil {
		w.close()
		return nil, fmt.Errorf("send config: %w", err)
	}

	if err := w.awaitReady(p.cfg.StartupTimeout); err != nil {
		w.close()
		return nil, fmt.Errorf("worker %d: %w", id, err)
	}

	return w, nil
}

// awaitReady blocks until the worker prints its ready line or the timeout
// elapses. The model load (and the first-run download) happens on the
// Python side before that line appears.
func (w *worker) awaitReady(timeout time.Duration) error {
	lines := make(chan string, 1)
	errs := make(chan error, 1)

	go func() {
		if !w.scanner.Scan() {
			if err := w.scanner.Err(); err != nil {
				errs <- err
				return
			}
			errs <- fmt.Errorf("stdout closed before ready message")
			return
		}
		lines <- w.scanner.Text()
	}()

	var line string
	select {
	case line = <-lines:
	case err := <-errs:
		return fmt.Errorf("failed to read ready message: %w", err)
	case <-time.After(timeout):
		return fmt.Errorf("timed out after %s waiting for ready message", timeout)
	}

	var msg struct {
		Status   string   `json:"status"`
		Model    string   `json:"model"`
		Pipeline []string `json:"pipeline"`
		Error    string   `json:"error"`
	}
	if err := json.Unmarshal([]byte(line), &msg); err != nil {
		return fmt.Errorf("failed to parse ready message: %w", err)
	}

	if msg.Status != "ready" {
		if msg.Error != "" {
			return fmt.Errorf("unexpected startup status %q: %s", msg.Status, msg.Error)
		}
		return fmt.Errorf("unexpected startup status %q", msg.Status)
	}

	log.Printf("spaCy worker %d ready (model=%s, pipeline=%v)", w.id, msg.Model, msg.Pipeline)
	return nil
}

func (w *worker) processTask(text string) (*Annotation, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	reqJSON, err := json.Marshal(annotateRequest{Text: text})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	reqJSON = append(reqJSON, '\n')
	if _, err := w.stdin.Write(reqJSON); err != nil {
		return nil, fmt.Errorf("write request: %w", err)
	}

	if !w.scanner.Scan() {
		if err := w.scanner.Err(); err != nil {
			return nil, fmt.Errorf("read response: %w", err)
		}
		return nil, fmt.Errorf("stdout closed")
	}

	return decodeAnnotation(w.scanner.Bytes())
}

// decodeAnnotation validates one worker response line against the
// annotation schema and unmarshals it.
func decodeAnnotation(line []byte) (*Annotation, error) {
	var probe struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(line, &probe); err != nil {
		return nil, &AnnotationError{Message: "response is not valid JSON", Cause: err}
	}
	if probe.Error != "" {
		return nil, &AnnotationError{Message: probe.Error}
	}

	if err := schemas.ValidateJSONString(schemadefs.AnnotationSchema, string(line)); err != nil {
		return nil, &AnnotationError{Message: "response does not match the annotation schema", Cause: err}
	}

	var ann Annotation
	if err := json.Unmarshal(line, &ann); err != nil {
		return nil, &AnnotationError{Message: "failed to decode annotation", Cause: err}
	}

	if ann.Tokens == nil {
		ann.Tokens = []Token{}
	}
	if ann.Entities == nil {
		ann.Entities = []Entity{}
	}
	return &ann, nil
}

func (w *worker) close() {
	if w.stdin != nil {
		w.stdin.Close()
	}
	if w.process != nil && w.process.Process != nil {
		w.process.Process.Kill()
	}
	if w.stdout != nil {
		w.stdout.Close()
	}
}
