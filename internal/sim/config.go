package sim

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Reference resolution the default sizes and speeds were tuned for.
const (
	referenceWidth  = 800.0
	referenceHeight = 600.0
)

// Difficulty is a named aggressiveness preset.
type Difficulty int

const (
	DifficultyGoober Difficulty = iota
	DifficultyStandard
	DifficultyUltraViolence
	DifficultyNotWhenHow
)

var difficultyNames = [...]string{
	DifficultyGoober:        "goober",
	DifficultyStandard:      "standard",
	DifficultyUltraViolence: "ultraviolence",
	DifficultyNotWhenHow:    "notwhenhow",
}

func (d Difficulty) String() string {
	if d < 0 || int(d) >= len(difficultyNames) {
		return "unknown"
	}
	return difficultyNames[d]
}

// Aggressiveness returns the scaling factor for the preset.
func (d Difficulty) Aggressiveness() float64 {
	switch d {
	case DifficultyGoober:
		return 0.5
	case DifficultyUltraViolence:
		return 2.0
	case DifficultyNotWhenHow:
		return 4.0
	default:
		return 1.0
	}
}

// ParseDifficulty maps a case-insensitive preset name to a Difficulty.
func ParseDifficulty(name string) (Difficulty, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	n = strings.NewReplacer("-", "", "_", "", " ", "").Replace(n)
	for i, dn := range difficultyNames {
		if dn == n {
			return Difficulty(i), nil
		}
	}
	return DifficultyStandard, fmt.Errorf("unknown difficulty %q", name)
}

// Config is the immutable tuning for one session. The World copies it at
// construction; nothing mutates it afterwards.
type Config struct {
	Width            float64 `yaml:"width"`
	Height           float64 `yaml:"height"`
	ReferenceWidth   float64 `yaml:"reference_width"`
	ReferenceHeight  float64 `yaml:"reference_height"`
	Aggressiveness   float64 `yaml:"aggressiveness"`
	Lives            int     `yaml:"lives"`
	InvincibleTime   float64 `yaml:"invincible_time"`
	PlayerSpeed      float64 `yaml:"player_speed"`
	PlayerSize       float64 `yaml:"player_size"`
	FireRate         float64 `yaml:"fire_rate"`
	RapidFireFactor  float64 `yaml:"rapid_fire_factor"`
	BulletSpeed      float64 `yaml:"bullet_speed"`
	BulletSize       float64 `yaml:"bullet_size"`
	PowerUpDuration  float64 `yaml:"powerup_duration"`
	BossSpawnStep    int     `yaml:"boss_spawn_step"`

	ComboTimeout float64 `yaml:"combo_timeout"`
	ComboBase    float64 `yaml:"combo_base"`
	ComboCap     float64 `yaml:"combo_cap"`

	LaserChargeTime  float64 `yaml:"laser_charge_time"`
	LaserMinCharge   float64 `yaml:"laser_min_charge"`
	LaserFireTime    float64 `yaml:"laser_fire_time"`
	LaserDamageBase  float64 `yaml:"laser_damage_base"`
	LaserDamageMax   float64 `yaml:"laser_damage_max"`
	LaserWidthBase   float64 `yaml:"laser_width_base"`
	LaserWidthMax    float64 `yaml:"laser_width_max"`
	ZenithChargeTime float64 `yaml:"zenith_charge_time"`
	ZenithBeamTime   float64 `yaml:"zenith_beam_time"`
	ZenithCooldown   float64 `yaml:"zenith_cooldown"`
	ZenithPullSpeed  float64 `yaml:"zenith_pull_speed"`

	DeathExplosionTime float64 `yaml:"death_explosion_time"`
	GameOverDelay      float64 `yaml:"game_over_delay"`
}

// DefaultConfig returns the Standard-difficulty tuning at the reference resolution.
func DefaultConfig() Config {
	return Config{
		Width:            referenceWidth,
		Height:           referenceHeight,
		ReferenceWidth:   referenceWidth,
		ReferenceHeight:  referenceHeight,
		Aggressiveness:   1.0,
		Lives:            3,
		InvincibleTime:   1.0,
		PlayerSpeed:      300,
		PlayerSize:       20,
		FireRate:         10,
		RapidFireFactor:  0.3,
		BulletSpeed:      500,
		BulletSize:       5,
		PowerUpDuration:  10,
		BossSpawnStep:    10000,

		ComboTimeout: 2.0,
		ComboBase:    1.5,
		ComboCap:     50,

		LaserChargeTime:  2.0,
		LaserMinCharge:   0.2,
		LaserFireTime:    0.5,
		LaserDamageBase:  50,
		LaserDamageMax:   200,
		LaserWidthBase:   8,
		LaserWidthMax:    20,
		ZenithChargeTime: 1.0,
		ZenithBeamTime:   1.5,
		ZenithCooldown:   1.0,
		ZenithPullSpeed:  220,

		DeathExplosionTime: 3.0,
		GameOverDelay:      2.0,
	}
}

// WithDifficulty returns a copy using the preset's aggressiveness.
func (c Config) WithDifficulty(d Difficulty) Config {
	c.Aggressiveness = d.Aggressiveness()
	return c
}

// WithPlayArea returns a copy sized to the given play area.
func (c Config) WithPlayArea(w, h float64) Config {
	c.Width = w
	c.Height = h
	return c
}

// Validate reports the first setting that would make the simulation degenerate.
func (c Config) Validate() error {
	var errs []error
	if c.Width <= 0 || c.Height <= 0 {
		errs = append(errs, fmt.Errorf("play area must be positive, got %.0fx%.0f", c.Width, c.Height))
	}
	if c.ReferenceWidth <= 0 || c.ReferenceHeight <= 0 {
		errs = append(errs, errors.New("reference resolution must be positive"))
	}
	if c.Aggressiveness <= 0 {
		errs = append(errs, fmt.Errorf("aggressiveness must be positive, got %.2f", c.Aggressiveness))
	}
	if c.Lives < 1 {
		errs = append(errs, fmt.Errorf("lives must be at least 1, got %d", c.Lives))
	}
	if c.FireRate <= 0 {
		errs = append(errs, errors.New("fire_rate must be positive"))
	}
	if c.ComboBase <= 0 || c.ComboCap < 1 {
		errs = append(errs, errors.New("combo_base must be positive and combo_cap at least 1"))
	}
	if c.LaserChargeTime <= 0 {
		errs = append(errs, errors.New("laser_charge_time must be positive"))
	}
	if c.GameOverDelay < 0 || c.DeathExplosionTime < 0 {
		errs = append(errs, errors.New("death sequence delays must not be negative"))
	}
	return errors.Join(errs...)
}

// LoadConfigFile overlays a YAML tuning file on top of base. Keys absent from
// the file keep base's value.
func LoadConfigFile(path string, base Config) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return base, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := base
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return base, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return base, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// scale is the size/speed factor relative to the reference resolution.
func (c Config) scale() float64 {
	return math.Min(c.Width/c.ReferenceWidth, c.Height/c.ReferenceHeight)
}

func (c Config) scaleSize(v float64) float64 { return v * c.scale() }
func (c Config) scaleSpeed(v float64) float64 { return v * c.scale() }

// areaScale is play area relative to the reference area.
func (c Config) areaScale() float64 {
	return (c.Width * c.Height) / (c.ReferenceWidth * c.ReferenceHeight)
}

// PlayerSpawn is where the player starts and respawns.
func (c Config) PlayerSpawn() Vec2 {
	return Vec2{X: c.Width / 2, Y: c.Height - c.scaleSize(50)}
}
