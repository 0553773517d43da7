// cmd/entsite/main.go
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"entsite/internal/common/cache"
	"entsite/internal/common/config"
	"entsite/internal/common/httpclient"
	"entsite/internal/common/logger"
	"entsite/internal/common/metrics"
	extractwebsite "entsite/internal/lookup/extract-website"
	fetchwebsites "entsite/internal/lookup/fetch-websites"
	"entsite/internal/lookup/pipeline"
	queryequity "entsite/internal/lookup/query-equity"
	resolveentity "entsite/internal/lookup/resolve-entity"
	"entsite/internal/report"
	"entsite/pkg/registry"
)

// stageLogger bridges logger.Logger to the per-stage Logger interfaces.
type stageLogger struct {
	logger.Logger
}

func (a *stageLogger) withStage(fields map[string]interface{}) *stageLogger {
	return &stageLogger{a.Logger.With(fields)}
}

type resolveLoggerAdapter struct{ *stageLogger }

func (a resolveLoggerAdapter) With(fields map[string]interface{}) resolveentity.Logger {
	return resolveLoggerAdapter{a.withStage(fields)}
}

type equityLoggerAdapter struct{ *stageLogger }

func (a equityLoggerAdapter) With(fields map[string]interface{}) queryequity.Logger {
	return equityLoggerAdapter{a.withStage(fields)}
}

type extractLoggerAdapter struct{ *stageLogger }

func (a extractLoggerAdapter) With(fields map[string]interface{}) extractwebsite.Logger {
	return extractLoggerAdapter{a.withStage(fields)}
}

type fetchLoggerAdapter struct{ *stageLogger }

func (a fetchLoggerAdapter) With(fields map[string]interface{}) fetchwebsites.Logger {
	return fetchLoggerAdapter{a.withStage(fields)}
}

type pipelineLoggerAdapter struct{ *stageLogger }

func (a pipelineLoggerAdapter) With(fields map[string]interface{}) pipeline.Logger {
	return pipelineLoggerAdapter{a.withStage(fields)}
}

func main() {
	var (
		searchKey      = flag.String("s", "", "company name to look up")
		inputFile      = flag.String("f", "", "file with one company name per line")
		threshold      = flag.Int("q", 0, "ownership threshold percentage, 0-100")
		workers        = flag.Int("t", 0, "concurrent website fetches per parent")
		outputPath     = flag.String("o", "", "output file path (default: timestamped file under the results directory)")
		configPath     = flag.String("config", "", "config file path override")
		credentialPath = flag.String("credential", "", "credential file path override")
	)
	flag.Parse()

	flagsSet := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { flagsSet[f.Name] = true })

	var cfg *config.Config
	var err error
	if *configPath != "" {
		cfg, err = config.LoadFromFile(*configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()

	runID := uuid.NewString()[:8]
	log := logger.NewZapAdapter(zapLog).With(map[string]interface{}{
		"runId": runID,
	})

	if *searchKey == "" && *inputFile == "" {
		fmt.Fprintln(os.Stderr, "provide a company name (-s) or an input file (-f)")
		flag.Usage()
		os.Exit(1)
	}

	credFile := cfg.Lookup.CredentialFile
	if *credentialPath != "" {
		credFile = *credentialPath
	}
	credData, err := os.ReadFile(credFile)
	if err != nil {
		zapLog.Fatal("credential file missing", zap.String("path", credFile), zap.Error(err))
	}
	credential := strings.TrimSpace(string(credData))

	profile, err := loadProfile(cfg.Provider.RegistryPath)
	if err != nil {
		zapLog.Fatal("provider registry load failed", zap.Error(err))
	}

	keys, err := collectSearchKeys(*searchKey, *inputFile)
	if err != nil {
		zapLog.Fatal("input file unreadable", zap.Error(err))
	}

	effectiveThreshold := cfg.Lookup.DefaultThreshold
	if flagsSet["q"] {
		effectiveThreshold = *threshold
	}
	effectiveWorkers := cfg.Lookup.DefaultWorkers
	if flagsSet["t"] {
		effectiveWorkers = *workers
	}

	client := httpclient.New(httpclient.Config{
		Timeout:    config.GetDuration(cfg.Provider.Timeout),
		Credential: credential,
		UserAgent:  cfg.Provider.UserAgent,
	})

	websiteCache := buildCache(cfg, log)

	base := &stageLogger{log}
	resolver := resolveentity.NewHandler(&resolveentity.Config{
		SearchURL: profile.SearchURL(),
		QueryType: profile.SearchQueryType,
		PageSize:  profile.PageSize,
	}, client, resolveLoggerAdapter{base})

	equity := queryequity.NewHandler(&queryequity.Config{
		GraphURL: profile.GraphURL(),
		DataType: profile.GraphDataType,
	}, client, equityLoggerAdapter{base})

	extractor := extractwebsite.NewHandler(&extractwebsite.Config{
		DetailURL:  profile.DetailURL,
		Marker:     profile.WebsiteMarker,
		ScanWindow: profile.ScanWindow,
	}, client, websiteCache, extractLoggerAdapter{base})

	filler := fetchwebsites.NewHandler(extractor, fetchLoggerAdapter{base})

	p := pipeline.New(&pipeline.Config{
		Threshold: effectiveThreshold,
		Workers:   effectiveWorkers,
	}, resolver, equity, extractor, filler, pipelineLoggerAdapter{base})

	log.Info("starting batch lookup", map[string]interface{}{
		"keys":      len(keys),
		"threshold": effectiveThreshold,
		"workers":   effectiveWorkers,
		"provider":  profile.Name,
	})

	results := p.RunBatch(context.Background(), keys)

	outPath := *outputPath
	if outPath == "" {
		outPath, err = report.DefaultPath(cfg.Lookup.ResultsDir)
		if err != nil {
			zapLog.Fatal("cannot derive output path", zap.Error(err))
		}
	}

	if err := report.Write(results, outPath); err != nil {
		zapLog.Fatal("report write failed", zap.String("path", outPath), zap.Error(err))
	}

	log.Info("report written", map[string]interface{}{
		"path":    outPath,
		"results": len(results),
		"metrics": metrics.Summary(),
	})
	fmt.Printf("results saved to %s\n", outPath)
}

// loadProfile reads the provider registry file, falling back to the built-in
// profile when the default path does not exist. A present-but-invalid file
// is fatal.
func loadProfile(path string) (*registry.ProviderProfile, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return registry.Default(), nil
	}
	return registry.Load(path)
}

// collectSearchKeys merges the single -s key with the -f file, blank lines
// skipped, input order preserved.
func collectSearchKeys(searchKey, inputFile string) ([]string, error) {
	var keys []string

	if inputFile != "" {
		f, err := os.Open(inputFile)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		scanner := bufio.NewScanner(f)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line != "" {
				keys = append(keys, line)
			}
		}
		if err := scanner.Err(); err != nil {
			return nil, err
		}
	}

	if searchKey != "" {
		keys = append(keys, searchKey)
	}

	return keys, nil
}

// buildCache picks the redis backend when configured and reachable, else
// the bounded in-memory cache.
func buildCache(cfg *config.Config, log logger.Logger) cache.Cache {
	if cfg.Cache.Redis.Address == "" {
		return cache.NewMemory(cfg.Cache.Capacity)
	}

	r := cache.NewRedis(cfg.Cache.Redis, log)
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := r.Ping(ctx); err != nil {
		log.Warn("redis cache unreachable, using in-memory cache", map[string]interface{}{
			"address": cfg.Cache.Redis.Address,
			"error":   err.Error(),
		})
		r.Close()
		return cache.NewMemory(cfg.Cache.Capacity)
	}

	return r
}
