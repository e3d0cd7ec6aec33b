package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime/debug"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/volt/audio"
	"github.com/lixenwraith/volt/physics"
	"github.com/lixenwraith/volt/scene"
)

const (
	logDir      = "logs"
	logFileName = "volt-view.log"
	maxLogSize  = 10 * 1024 * 1024 // Rotate beyond 10MB
)

var (
	sceneFlag = flag.String("scene", "scenes/pile.yaml", "Scene file (YAML)")
	debugFlag = flag.Bool("debug", false, "Write diagnostics to logs/volt-view.log")
	muteFlag  = flag.Bool("mute", false, "Disable impact and explosion sounds")
)

// setupLogging sends the standard logger to a file when debug is set, otherwise discards it
// The terminal belongs to tcell, so nothing may be written to stderr while running
func setupLogging(debug bool) *os.File {
	if !debug {
		log.SetOutput(io.Discard)
		return nil
	}

	if err := os.MkdirAll(logDir, 0755); err != nil {
		log.SetOutput(io.Discard)
		return nil
	}

	logPath := filepath.Join(logDir, logFileName)
	if info, err := os.Stat(logPath); err == nil && info.Size() > maxLogSize {
		rotated := filepath.Join(logDir, fmt.Sprintf("volt-view-%s.log", time.Now().Format("20060102-150405")))
		if err := os.Rename(logPath, rotated); err != nil {
			fmt.Fprintf(os.Stderr, "volt-view: log rotation failed: %v\n", err)
		}
	}

	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		log.SetOutput(io.Discard)
		return nil
	}

	log.SetOutput(f)
	log.SetFlags(log.Ltime | log.Lmicroseconds)
	return f
}

func main() {
	flag.Parse()

	if logFile := setupLogging(*debugFlag); logFile != nil {
		defer logFile.Close()
	}

	cfg := physics.DefaultConfig()
	cfg.Logger = log.Default()

	s, err := scene.LoadWorld(*sceneFlag, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "volt-view: %v\n", err)
		os.Exit(1)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "volt-view: failed to create screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "volt-view: failed to initialize terminal: %v\n", err)
		os.Exit(1)
	}

	// Panic Recovery: restore the terminal before printing the crash
	defer func() {
		if r := recover(); r != nil {
			screen.Fini()
			fmt.Fprintf(os.Stderr, "\nVOLT-VIEW CRASHED: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
			os.Exit(1)
		}
	}()

	audioCfg := audio.LoadAudioConfig()
	if *muteFlag {
		audioCfg.Enabled = false
	}
	sound := audio.NewSoundManager(audioCfg)
	if err := sound.Initialize(); err != nil {
		// Non-fatal, the viewer runs without sound
		log.Printf("Audio initialization failed: %v", err)
	}

	v, err := NewViewer(screen, s.World, sound)
	if err != nil {
		screen.Fini()
		fmt.Fprintf(os.Stderr, "volt-view: %v\n", err)
		os.Exit(1)
	}

	v.Run()

	sound.Cleanup()
	screen.Fini()
}
