package wlgl

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const vertexShader = `
attribute vec4 vPosition;
void main()
{
	gl_Position = vPosition;
}
`

const fragmentShader = `
precision mediump float;
void main()
{
	gl_FragColor = vec4(1.0, 0.0, 0.0, 1.0);
}
`

// maxSize keeps the shm buffer of a window addressable by a wl_shm
// pool, whose size is an int32.
const maxSize = 16384

// Config holds everything that a run can vary. The zero value is not
// valid. Start from DefaultConfig.
type Config struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
	AppID  string `yaml:"app_id"`

	VertexShader   string `yaml:"vertex_shader"`
	FragmentShader string `yaml:"fragment_shader"`

	// Attribute is the vertex shader input that the triangle is fed
	// to. It is bound to AttributeIndex before the program is linked.
	Attribute      string `yaml:"attribute"`
	AttributeIndex uint32 `yaml:"attribute_index"`

	ClearColor [4]float32 `yaml:"clear_color"`
	Triangle   [9]float32 `yaml:"triangle"`

	// InfoLogLimit bounds the shader and program logs that are kept,
	// in bytes, including GL's terminating NUL.
	InfoLogLimit int `yaml:"info_log_limit"`
}

func DefaultConfig() Config {
	return Config{
		Width:  800,
		Height: 600,
		Title:  "wlgl",
		AppID:  "dev.deedles.wlgl",

		VertexShader:   vertexShader,
		FragmentShader: fragmentShader,

		Attribute:      "vPosition",
		AttributeIndex: 0,

		ClearColor: [4]float32{0, 0.3, 0.3, 0},
		Triangle: [9]float32{
			0, 0.5, 0,
			-0.5, -0.5, 0,
			0.5, -0.5, 0,
		},

		InfoLogLimit: 1024,
	}
}

// LoadConfig reads a YAML file over the defaults. Fields that the file
// doesn't mention keep their default values.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	file, err := os.Open(path)
	if err != nil {
		return cfg, err
	}
	defer file.Close()

	d := yaml.NewDecoder(file)
	d.KnownFields(true)
	err = d.Decode(&cfg)
	if err != nil {
		return cfg, fmt.Errorf("decode %v: %w", path, err)
	}

	return cfg, cfg.Validate()
}

func (cfg Config) Validate() error {
	var errs []error
	if (cfg.Width <= 0) || (cfg.Width > maxSize) {
		errs = append(errs, fmt.Errorf("width %v out of range (1 to %v)", cfg.Width, maxSize))
	}
	if (cfg.Height <= 0) || (cfg.Height > maxSize) {
		errs = append(errs, fmt.Errorf("height %v out of range (1 to %v)", cfg.Height, maxSize))
	}
	if cfg.VertexShader == "" {
		errs = append(errs, errors.New("no vertex shader"))
	}
	if cfg.FragmentShader == "" {
		errs = append(errs, errors.New("no fragment shader"))
	}
	if cfg.Attribute == "" {
		errs = append(errs, errors.New("no attribute name"))
	}
	for _, c := range cfg.ClearColor {
		if (c < 0) || (c > 1) {
			errs = append(errs, fmt.Errorf("clear color %v out of range", cfg.ClearColor))
			break
		}
	}
	if cfg.InfoLogLimit <= 0 {
		errs = append(errs, fmt.Errorf("info log limit %v must be positive", cfg.InfoLogLimit))
	}
	return errors.Join(errs...)
}
