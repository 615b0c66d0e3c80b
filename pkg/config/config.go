// pkg/config/config.go
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/viper"

	"github.com/opd-ai/go-volley/pkg/control"
	"github.com/opd-ai/go-volley/pkg/entity"
	"github.com/opd-ai/go-volley/pkg/input"
	"github.com/opd-ai/go-volley/pkg/logging"
	"github.com/opd-ai/go-volley/pkg/physics"
	"github.com/opd-ai/go-volley/pkg/validation"
)

// EnvPrefix prefixes every environment override, e.g. VOLLEY_CONTROL_CHARGEMAX.
const EnvPrefix = "VOLLEY"

// Contact friction applied by the physics world.
const (
	worldFriction = 5.0
	bodyFriction  = 30.0
)

// GameConfig contains configuration for a volley match
type GameConfig struct {
	World   WorldConfig   `json:"world" mapstructure:"world"`
	Net     NetConfig     `json:"net" mapstructure:"net"`
	Control ControlConfig `json:"control" mapstructure:"control"`
	Ball    BallConfig    `json:"ball" mapstructure:"ball"`
	Player1 PlayerConfig  `json:"player1" mapstructure:"player1"`
	Player2 PlayerConfig  `json:"player2" mapstructure:"player2"`
	Loop    LoopConfig    `json:"loop" mapstructure:"loop"`
	AI      AIConfig      `json:"ai" mapstructure:"ai"`
	Logging LoggingConfig `json:"logging" mapstructure:"logging"`
}

// WorldConfig is the size of the arena and its gravity.
type WorldConfig struct {
	Width   float64 `json:"width" mapstructure:"width"`
	Height  float64 `json:"height" mapstructure:"height"`
	Gravity float64 `json:"gravity" mapstructure:"gravity"`
}

// NetConfig sizes the net standing at the center of the floor.
type NetConfig struct {
	Width  float64 `json:"width" mapstructure:"width"`
	Height float64 `json:"height" mapstructure:"height"`
}

// ControlConfig holds the per-tick tuning values shared by both players.
type ControlConfig struct {
	TurningSpeed      float64 `json:"turningSpeed" mapstructure:"turningspeed"`
	ChargeSpeed       float64 `json:"chargeSpeed" mapstructure:"chargespeed"`
	ChargeMax         float64 `json:"chargeMax" mapstructure:"chargemax"`
	GroundMovingSpeed float64 `json:"groundMovingSpeed" mapstructure:"groundmovingspeed"`
	AirMovingSpeed    float64 `json:"airMovingSpeed" mapstructure:"airmovingspeed"`
	FrictionFactor    float64 `json:"frictionFactor" mapstructure:"frictionfactor"`
	BodyRadius        float64 `json:"bodyRadius" mapstructure:"bodyradius"`
}

// BallConfig holds the ball's size and the materials of every moving body.
type BallConfig struct {
	Radius                 float64 `json:"radius" mapstructure:"radius"`
	Mass                   float64 `json:"mass" mapstructure:"mass"`
	BouncinessWithWorld    float64 `json:"bouncinessWithWorld" mapstructure:"bouncinesswithworld"`
	BouncinessBetweenBalls float64 `json:"bouncinessBetweenBalls" mapstructure:"bouncinessbetweenballs"`
}

// PlayerConfig configures one side.
type PlayerConfig struct {
	Name           string     `json:"name" mapstructure:"name"`
	AIControlled   bool       `json:"aiControlled" mapstructure:"aicontrolled"`
	Keys           KeysConfig `json:"keys" mapstructure:"keys"`
	Color          string     `json:"color" mapstructure:"color"`
	PowerLineColor string     `json:"powerLineColor" mapstructure:"powerlinecolor"`
}

// KeysConfig names the keys bound to a human player.
type KeysConfig struct {
	Left   string `json:"left" mapstructure:"left"`
	Right  string `json:"right" mapstructure:"right"`
	Charge string `json:"charge" mapstructure:"charge"`
}

// LoopConfig configures the tick loop.
type LoopConfig struct {
	TickRate        float64 `json:"tickRate" mapstructure:"tickrate"`
	SlowMotionScale float64 `json:"slowMotionScale" mapstructure:"slowmotionscale"`
}

// AIConfig configures computer players.
type AIConfig struct {
	Debug bool `json:"debug" mapstructure:"debug"`
}

// LoggingConfig configures the logger. An empty level defers to
// VOLLEY_LOG_LEVEL.
type LoggingConfig struct {
	Level      string `json:"level" mapstructure:"level"`
	File       string `json:"file" mapstructure:"file"`
	MaxSizeMB  int    `json:"maxSizeMB" mapstructure:"maxsizemb"`
	MaxBackups int    `json:"maxBackups" mapstructure:"maxbackups"`
}

// ConfigurationError reports one invalid field.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration: %s: %s", e.Field, e.Reason)
}

// DefaultConfig returns a default game configuration
func DefaultConfig() *GameConfig {
	return &GameConfig{
		World: WorldConfig{
			Width:   1600,
			Height:  900,
			Gravity: 200,
		},
		Net: NetConfig{
			Width:  20,
			Height: 300,
		},
		Control: ControlConfig{
			TurningSpeed:      0.05,
			ChargeSpeed:       2,
			ChargeMax:         100,
			GroundMovingSpeed: 300,
			AirMovingSpeed:    150,
			FrictionFactor:    0.9,
			BodyRadius:        55,
		},
		Ball: BallConfig{
			Radius:                 55,
			Mass:                   1,
			BouncinessWithWorld:    0.6,
			BouncinessBetweenBalls: 0.9,
		},
		Player1: PlayerConfig{
			Name:           "Player 1",
			AIControlled:   false,
			Keys:           KeysConfig{Left: "A", Right: "D", Charge: "W"},
			Color:          "#3366ff",
			PowerLineColor: "#99ccff",
		},
		Player2: PlayerConfig{
			Name:           "Player 2",
			AIControlled:   true,
			Keys:           KeysConfig{Left: "Left", Right: "Right", Charge: "Up"},
			Color:          "#ff3333",
			PowerLineColor: "#ffcc66",
		},
		Loop: LoopConfig{
			TickRate:        60,
			SlowMotionScale: 0.5,
		},
		Logging: LoggingConfig{
			Level:      "",
			MaxSizeMB:  10,
			MaxBackups: 3,
		},
	}
}

// SetDefaults registers every default value with v so environment
// variables can override any key.
func SetDefaults(v *viper.Viper) {
	d := DefaultConfig()

	v.SetDefault("world.width", d.World.Width)
	v.SetDefault("world.height", d.World.Height)
	v.SetDefault("world.gravity", d.World.Gravity)

	v.SetDefault("net.width", d.Net.Width)
	v.SetDefault("net.height", d.Net.Height)

	v.SetDefault("control.turningspeed", d.Control.TurningSpeed)
	v.SetDefault("control.chargespeed", d.Control.ChargeSpeed)
	v.SetDefault("control.chargemax", d.Control.ChargeMax)
	v.SetDefault("control.groundmovingspeed", d.Control.GroundMovingSpeed)
	v.SetDefault("control.airmovingspeed", d.Control.AirMovingSpeed)
	v.SetDefault("control.frictionfactor", d.Control.FrictionFactor)
	v.SetDefault("control.bodyradius", d.Control.BodyRadius)

	v.SetDefault("ball.radius", d.Ball.Radius)
	v.SetDefault("ball.mass", d.Ball.Mass)
	v.SetDefault("ball.bouncinesswithworld", d.Ball.BouncinessWithWorld)
	v.SetDefault("ball.bouncinessbetweenballs", d.Ball.BouncinessBetweenBalls)

	setPlayerDefaults(v, "player1", d.Player1)
	setPlayerDefaults(v, "player2", d.Player2)

	v.SetDefault("loop.tickrate", d.Loop.TickRate)
	v.SetDefault("loop.slowmotionscale", d.Loop.SlowMotionScale)

	v.SetDefault("ai.debug", d.AI.Debug)

	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.file", d.Logging.File)
	v.SetDefault("logging.maxsizemb", d.Logging.MaxSizeMB)
	v.SetDefault("logging.maxbackups", d.Logging.MaxBackups)
}

func setPlayerDefaults(v *viper.Viper, key string, p PlayerConfig) {
	v.SetDefault(key+".name", p.Name)
	v.SetDefault(key+".aicontrolled", p.AIControlled)
	v.SetDefault(key+".keys.left", p.Keys.Left)
	v.SetDefault(key+".keys.right", p.Keys.Right)
	v.SetDefault(key+".keys.charge", p.Keys.Charge)
	v.SetDefault(key+".color", p.Color)
	v.SetDefault(key+".powerlinecolor", p.PowerLineColor)
}

// NewViper returns a viper instance with defaults and environment overrides
// registered. When path is not empty the file is read; its format follows
// the extension (json, yaml or toml).
func NewViper(path string) (*viper.Viper, error) {
	v := viper.New()
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path == "" {
		return v, nil
	}
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return v, nil
}

// FromViper decodes and validates a configuration.
func FromViper(v *viper.Viper) (*GameConfig, error) {
	var config GameConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// LoadConfig loads a configuration from a file. An empty path yields the
// defaults with environment overrides applied.
func LoadConfig(path string) (*GameConfig, error) {
	v, err := NewViper(path)
	if err != nil {
		return nil, err
	}
	return FromViper(v)
}

// SaveConfig saves a configuration to a file
func SaveConfig(config *GameConfig, path string) error {
	if config == nil {
		return errors.New("config is nil")
	}

	data, err := jsoniter.ConfigCompatibleWithStandardLibrary.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks every field. All problems are reported, joined; each one
// is a *ConfigurationError.
func (c *GameConfig) Validate() error {
	var errs []error
	check := func(field string, err error) {
		if err != nil {
			errs = append(errs, &ConfigurationError{Field: field, Reason: err.Error()})
		}
	}

	check("world.width", validation.ValidatePositive(c.World.Width))
	check("world.height", validation.ValidatePositive(c.World.Height))
	check("world.gravity", validation.ValidateFinite(c.World.Gravity))

	check("net.width", validation.ValidateNonNegative(c.Net.Width))
	check("net.height", validation.ValidateRange(c.Net.Height, 0, c.World.Height))

	check("control.turningSpeed", validation.ValidateNonNegative(c.Control.TurningSpeed))
	check("control.chargeSpeed", validation.ValidateNonNegative(c.Control.ChargeSpeed))
	check("control.chargeMax", validation.ValidatePositive(c.Control.ChargeMax))
	check("control.groundMovingSpeed", validation.ValidateNonNegative(c.Control.GroundMovingSpeed))
	check("control.airMovingSpeed", validation.ValidateNonNegative(c.Control.AirMovingSpeed))
	check("control.frictionFactor", validation.ValidateRange(c.Control.FrictionFactor, 0, 1))
	check("control.bodyRadius", validation.ValidatePositive(c.Control.BodyRadius))

	check("ball.radius", validation.ValidatePositive(c.Ball.Radius))
	check("ball.mass", validation.ValidatePositive(c.Ball.Mass))
	check("ball.bouncinessWithWorld", validation.ValidateRange(c.Ball.BouncinessWithWorld, 0, 1))
	check("ball.bouncinessBetweenBalls", validation.ValidateRange(c.Ball.BouncinessBetweenBalls, 0, 1))

	c.Player1.validate("player1", check)
	c.Player2.validate("player2", check)

	check("loop.tickRate", validation.ValidatePositive(c.Loop.TickRate))
	check("loop.slowMotionScale", validateScale(c.Loop.SlowMotionScale))

	if c.Logging.Level != "" {
		if _, ok := logging.ParseLevel(c.Logging.Level); !ok {
			check("logging.level", fmt.Errorf("unknown level %q", c.Logging.Level))
		}
	}

	return errors.Join(errs...)
}

func (p PlayerConfig) validate(prefix string, check func(string, error)) {
	if _, err := validation.ValidatePlayerName(p.Name); err != nil {
		check(prefix+".name", err)
	}
	if _, err := entity.ParseColor(p.Color); err != nil {
		check(prefix+".color", err)
	}
	if _, err := entity.ParseColor(p.PowerLineColor); err != nil {
		check(prefix+".powerLineColor", err)
	}
	if p.AIControlled {
		return
	}
	check(prefix+".keys.left", validation.ValidateKeyName(p.Keys.Left))
	check(prefix+".keys.right", validation.ValidateKeyName(p.Keys.Right))
	check(prefix+".keys.charge", validation.ValidateKeyName(p.Keys.Charge))
	check(prefix+".keys", validation.ValidateDistinctKeys(p.Keys.Left, p.Keys.Right, p.Keys.Charge))
}

func validateScale(v float64) error {
	if err := validation.ValidateRange(v, 0, 1); err != nil {
		return err
	}
	if v == 0 {
		return errors.New("must be above zero")
	}
	return nil
}

// ControlSettings returns the control core tuning.
func (c *GameConfig) ControlSettings() control.Settings {
	return control.Settings{
		TurningSpeed:      c.Control.TurningSpeed,
		ChargeSpeed:       c.Control.ChargeSpeed,
		ChargeMax:         c.Control.ChargeMax,
		GroundMovingSpeed: c.Control.GroundMovingSpeed,
		AirMovingSpeed:    c.Control.AirMovingSpeed,
		FrictionFactor:    c.Control.FrictionFactor,
		BodyRadius:        c.Control.BodyRadius,
	}
}

// WorldSettings returns the physics world setup.
func (c *GameConfig) WorldSettings() physics.WorldSettings {
	return physics.WorldSettings{
		Width:     c.World.Width,
		Height:    c.World.Height,
		Gravity:   c.World.Gravity,
		NetWidth:  c.Net.Width,
		NetHeight: c.Net.Height,
		BodyWorld: physics.Material{Friction: worldFriction, Restitution: c.Ball.BouncinessWithWorld},
		BodyBody:  physics.Material{Friction: bodyFriction, Restitution: c.Ball.BouncinessBetweenBalls},
	}
}

// BallMaterial returns the material of every moving body.
func (c *GameConfig) BallMaterial() entity.BallMaterial {
	return entity.BallMaterial{
		Mass:                   c.Ball.Mass,
		BouncinessWithWorld:    c.Ball.BouncinessWithWorld,
		BouncinessBetweenBalls: c.Ball.BouncinessBetweenBalls,
	}
}

// Arena returns the play area as a rectangle anchored at the origin.
func (c *GameConfig) Arena() physics.Rect {
	return physics.RectFromOrigin(c.World.Width, c.World.Height)
}

// Bindings returns the key bindings of a human player.
func (p PlayerConfig) Bindings() control.Bindings {
	return control.Bindings{
		Left:   keyID(p.Keys.Left),
		Right:  keyID(p.Keys.Right),
		Charge: keyID(p.Keys.Charge),
	}
}

// keyID upper-cases single character key names so "a" and "A" bind the
// same key.
func keyID(name string) input.KeyID {
	if len(name) == 1 {
		name = strings.ToUpper(name)
	}
	return input.KeyID(name)
}

// Keys returns the bound keys of every human player.
func (c *GameConfig) Keys() []input.KeyID {
	var keys []input.KeyID
	for _, p := range []PlayerConfig{c.Player1, c.Player2} {
		if p.AIControlled {
			continue
		}
		b := p.Bindings()
		keys = append(keys, b.Left, b.Right, b.Charge)
	}
	return keys
}

// Colors parses the player and aim line colors. Validate must have passed.
func (p PlayerConfig) Colors() (body, line entity.Color) {
	return entity.MustParseColor(p.Color), entity.MustParseColor(p.PowerLineColor)
}

// LoggerOptions returns the logger setup.
func (c *GameConfig) LoggerOptions() logging.Options {
	return logging.Options{
		Level:      c.Logging.Level,
		File:       c.Logging.File,
		MaxSizeMB:  c.Logging.MaxSizeMB,
		MaxBackups: c.Logging.MaxBackups,
	}
}
