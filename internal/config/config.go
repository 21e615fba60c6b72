// Package config handles application configuration loading and management.
package config

// Config holds all application settings.
type Config struct {
	Window     WindowConfig     `yaml:"window"`
	Camera     CameraConfig     `yaml:"camera"`
	Geometry   GeometryConfig   `yaml:"geometry"`
	Simulation SimulationConfig `yaml:"simulation"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// WindowConfig holds display settings for the viewer.
type WindowConfig struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	VSync  bool   `yaml:"vsync"`
}

// CameraConfig holds the orbit camera settings. Angles are in degrees.
type CameraConfig struct {
	FOV      float64 `yaml:"fov"`
	Near     float64 `yaml:"near"`
	Far      float64 `yaml:"far"`
	Distance float64 `yaml:"distance"`
	Yaw      float64 `yaml:"yaw"`
	Pitch    float64 `yaml:"pitch"`
}

// GeometryConfig holds the mechanism dimensions in millimeters.
type GeometryConfig struct {
	CellSize     float64 `yaml:"cell_size"`
	Spacing      float64 `yaml:"spacing"`
	AnchorOffset float64 `yaml:"anchor_offset"`
	BaseOffset   float64 `yaml:"base_offset"`
	MaxExtension float64 `yaml:"max_extension"`
	TipRadius    float64 `yaml:"tip_radius"`
}

// SimulationConfig holds stepping and actuation settings.
type SimulationConfig struct {
	TurnSteps int     `yaml:"turn_steps"` // Animation steps per quarter turn
	LegRate   float64 `yaml:"leg_rate"`   // Default leg speed, mm per second
	DockGap   float64 `yaml:"dock_gap"`   // Docking gap along the approach axis, mm
	TickRate  int     `yaml:"tick_rate"`  // Simulation ticks per second
	Seed      int64   `yaml:"seed"`       // Seed for randomized scenarios
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:  "CubeLink",
			Width:  1280,
			Height: 720,
			VSync:  true,
		},
		Camera: CameraConfig{
			FOV:      45,
			Near:     1,
			Far:      2000,
			Distance: 320,
			Yaw:      -45,
			Pitch:    30,
		},
		Geometry: GeometryConfig{
			CellSize:     25,
			Spacing:      25,
			AnchorOffset: 8,
			BaseOffset:   50,
			MaxExtension: 30,
			TipRadius:    5,
		},
		Simulation: SimulationConfig{
			TurnSteps: 30,
			LegRate:   15,
			DockGap:   0,
			TickRate:  60,
			Seed:      1,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
