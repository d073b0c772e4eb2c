package lint

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/aliaslint/aliaslint/internal"
	"github.com/aliaslint/aliaslint/internal/aliases"
	"github.com/aliaslint/aliaslint/internal/jsparse"
	"github.com/aliaslint/aliaslint/internal/lints"
	tt "github.com/aliaslint/aliaslint/internal/types"
)

// DefaultConfigName is the config file looked up when none is given.
const DefaultConfigName = ".aliaslint.yaml"

type LintEngine interface {
	Run(filePath string) ([]tt.Issue, error)
	RunSource(source []byte) ([]tt.Issue, error)
	IgnoreRule(rule string)
	IgnorePath(path string)
}

// Config is the root of the .aliaslint.yaml configuration file.
type Config struct {
	Name string `yaml:"name"`

	// Rules overrides per-rule severities.
	Rules map[string]tt.ConfigRule `yaml:"rules"`

	// Options configures the relative-import rule.
	Options lints.Settings `yaml:"options"`

	// Aliases are explicit alias entries, consulted before anything
	// discovered in tsconfig/jsconfig.
	Aliases []aliases.Item `yaml:"aliases"`

	// Project points at the directory holding tsconfig.json/jsconfig.json
	// when it is not the lint root.
	Project string `yaml:"project"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() Config {
	return Config{
		Name:    "aliaslint",
		Rules:   map[string]tt.ConfigRule{},
		Options: lints.DefaultSettings(),
	}
}

// New creates a lint engine rooted at rootDir, configured from the given
// config file path ("" means look for .aliaslint.yaml in rootDir).
func New(rootDir string, configurationPath string) (*internal.Engine, error) {
	config, err := parseConfigurationFile(rootDir, configurationPath)
	if err != nil {
		return nil, err
	}

	projectRoot := rootDir
	if config.Project != "" {
		if filepath.IsAbs(config.Project) {
			projectRoot = config.Project
		} else {
			projectRoot = filepath.Join(rootDir, config.Project)
		}
	}

	return internal.NewEngine(projectRoot, config.Rules, config.Options, config.Aliases)
}

// parseConfigurationFile loads the yaml config. A missing default config is
// not an error; an explicitly named config must exist. Unknown fields are
// rejected.
func parseConfigurationFile(rootDir, path string) (Config, error) {
	config := DefaultConfig()

	explicit := path != ""
	if !explicit {
		path = filepath.Join(rootDir, DefaultConfigName)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && os.IsNotExist(err) {
			return config, nil
		}
		return config, err
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&config); err != nil && !errors.Is(err, io.EOF) {
		return config, fmt.Errorf("invalid config %s: %w", path, err)
	}
	if config.Rules == nil {
		config.Rules = map[string]tt.ConfigRule{}
	}
	return config, nil
}

func ProcessFiles(
	ctx context.Context,
	logger *zap.Logger,
	engine LintEngine,
	paths []string,
	processor func(LintEngine, string) ([]tt.Issue, error),
) ([]tt.Issue, error) {
	var allIssues []tt.Issue
	for _, path := range paths {
		issues, err := ProcessPath(ctx, logger, engine, path, processor)
		if err != nil {
			if logger != nil {
				logger.Error("Error processing path", zap.String("path", path), zap.Error(err))
			}
			return nil, err
		}
		allIssues = append(allIssues, issues...)
	}

	return allIssues, nil
}

func ProcessPath(
	ctx context.Context,
	logger *zap.Logger,
	engine LintEngine,
	path string,
	processor func(LintEngine, string) ([]tt.Issue, error),
) ([]tt.Issue, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("error accessing %s: %w", path, err)
	}

	if !info.IsDir() {
		if !hasDesiredExtension(path) {
			return nil, nil
		}
		return processor(engine, path)
	}

	var files []string
	filepath.Walk(path, func(filePath string, fileInfo os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if !fileInfo.IsDir() && hasDesiredExtension(filePath) {
			files = append(files, filePath)
		}
		return nil
	})

	// channels for results and errors
	resultChan := make(chan []tt.Issue, len(files))
	errorChan := make(chan error, len(files))

	// limit the number of workers
	maxWorkers := runtime.NumCPU()
	sem := make(chan struct{}, maxWorkers)

	bar := progressbar.NewOptions(len(files),
		progressbar.OptionSetDescription(path),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}))

	for _, filePath := range files {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
			sem <- struct{}{}
			go func(fp string) {
				defer func() { <-sem }()

				fileIssues, err := processor(engine, fp)
				if err != nil {
					if logger != nil {
						logger.Error("Error processing file", zap.String("file", fp), zap.Error(err))
					}
					errorChan <- err
					resultChan <- nil
				} else {
					resultChan <- fileIssues
					errorChan <- nil
				}
				bar.Add(1)
			}(filePath)
		}
	}

	var issues []tt.Issue
	for range files {
		if err := <-errorChan; err != nil {
			continue
		}
		if result := <-resultChan; result != nil {
			issues = append(issues, result...)
		}
	}

	fmt.Println()
	return issues, nil
}

func ProcessFile(engine LintEngine, filePath string) ([]tt.Issue, error) {
	return engine.Run(filePath)
}

func ProcessSource(engine LintEngine, source []byte) ([]tt.Issue, error) {
	return engine.RunSource(source)
}

func hasDesiredExtension(path string) bool {
	return jsparse.SupportedExtensions[filepath.Ext(path)]
}
