package config

type Config struct {
	Listen      string             `yaml:"listen"`
	ProbePath   string             `yaml:"probe_path"`
	MetricsPath string             `yaml:"metrics_path"`
	Timeout     float64            `yaml:"timeout"`
	Devices     map[string]*Device `yaml:"devices"`
	Global      Global             `yaml:"global"`
}

func DefaultConfig() Config {
	return Config{
		Listen:      ":9778",
		ProbePath:   "/probe",
		MetricsPath: "/metrics",
		Timeout:     60,
		Global: Global{
			Options: DefaultOptions(),
		},
	}
}

func DefaultOptions() Options {
	return Options{
		ExportStatus:   true,
		ExportPoE:      true,
		ExportIdentity: true,
	}
}

func (c *Config) UnmarshalYAML(unmarshal func(interface{}) error) error {
	*c = DefaultConfig()

	type plain Config
	if err := unmarshal((*plain)(c)); err != nil {
		return err
	}

	for _, device := range c.Devices {
		if device.Password == nil {
			device.Password = &c.Global.Password
		}
		if device.Options == nil {
			device.Options = &c.Global.Options
		}
	}

	return nil
}

type Global struct {
	Password string  `yaml:"password"`
	Options  Options `yaml:"options"`
}

type Options struct {
	ExportStatus   bool `yaml:"export_status"`
	ExportPoE      bool `yaml:"export_poe"`
	ExportIdentity bool `yaml:"export_identity"`
}

func (o *Options) UnmarshalYAML(unmarshal func(interface{}) error) error {
	*o = DefaultOptions()

	type plain Options
	if err := unmarshal((*plain)(o)); err != nil {
		return err
	}

	return nil
}

type Device struct {
	Address  string   `yaml:"address"`
	Password *string  `yaml:"password"`
	Options  *Options `yaml:"options"`
}
