package config

const (
	defaultClassifierFile = "file_extensions.csv"
	defaultOutputDir      = "."
	defaultWorkers        = 4
	defaultTheme          = "github"
	defaultSiteTitle      = "AlgoWiki"
	defaultStylesheet     = "/static/style.css"
	defaultTabScript      = "/static/tabs.js"
	defaultMathStylesheet = "https://cdn.jsdelivr.net/npm/katex@0.16.9/dist/katex.min.css"
	defaultMathScript     = "https://cdn.jsdelivr.net/npm/katex@0.16.9/dist/contrib/auto-render.min.js"
)

func applyDefaults(cfg *Config) {
	if cfg.ClassifierFile == "" {
		cfg.ClassifierFile = defaultClassifierFile
	}
	if cfg.Output.Directory == "" {
		cfg.Output.Directory = defaultOutputDir
	}

	s := &cfg.Site
	if s.Title == "" {
		s.Title = defaultSiteTitle
	}
	if s.Stylesheet == "" {
		s.Stylesheet = defaultStylesheet
	}
	if s.TabScript == "" {
		s.TabScript = defaultTabScript
	}
	if s.MathStylesheet == "" {
		s.MathStylesheet = defaultMathStylesheet
	}
	if s.MathScript == "" {
		s.MathScript = defaultMathScript
	}

	b := &cfg.Build
	if b.Workers <= 0 {
		b.Workers = defaultWorkers
	}
	if b.Theme == "" {
		b.Theme = defaultTheme
	}
	if b.GenericPages == "" {
		b.GenericPages = GenericEmpty
	}
	if b.DuplicateLabels == "" {
		b.DuplicateLabels = DuplicateLastWins
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = LogLevelInfo
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = LogFormatText
	}
}
