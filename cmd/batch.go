package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/acailic/video-nugget/internal/adapter/outbound/export"
	"github.com/acailic/video-nugget/internal/adapter/outbound/messaging"
	"github.com/acailic/video-nugget/internal/adapter/outbound/mock"
	"github.com/acailic/video-nugget/internal/adapter/outbound/playlist"
	"github.com/acailic/video-nugget/internal/adapter/outbound/storage"
	"github.com/acailic/video-nugget/internal/application/common/slogger"
	"github.com/acailic/video-nugget/internal/application/service"
	"github.com/acailic/video-nugget/internal/application/worker"
	"github.com/acailic/video-nugget/internal/config"
	"github.com/acailic/video-nugget/internal/domain/entity"
	"github.com/acailic/video-nugget/internal/domain/valueobject"
	"github.com/acailic/video-nugget/internal/port/outbound"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	"gopkg.in/yaml.v3"
)

const progressPollInterval = 2 * time.Second

// batchManifest describes one batch job in a YAML file.
type batchManifest struct {
	Name     string         `yaml:"name"`
	URLs     []string       `yaml:"urls"`
	Playlist string         `yaml:"playlist,omitempty"`
	Config   manifestConfig `yaml:"config"`
}

// manifestConfig overrides the configured batch defaults. Pointer fields
// distinguish "absent" from zero values.
type manifestConfig struct {
	OutputDirectory     *string        `yaml:"output_directory"`
	ConcurrentJobs      *int           `yaml:"concurrent_jobs"`
	RetryFailed         *bool          `yaml:"retry_failed"`
	MaxRetries          *int           `yaml:"max_retries"`
	ExportFormats       []string       `yaml:"export_formats"`
	EnableAIAnalysis    *bool          `yaml:"enable_ai_analysis"`
	EnableTranscript    *bool          `yaml:"enable_transcript"`
	EnableSocialFormats *bool          `yaml:"enable_social_formats"`
	VideoConfig         map[string]any `yaml:"video_config"`
}

// newBatchCmd creates and returns the batch command group.
func newBatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Run and inspect batch jobs",
	}
	cmd.AddCommand(newBatchRunCmd())
	return cmd
}

// newBatchRunCmd creates the batch run command.
func newBatchRunCmd() *cobra.Command {
	var (
		manifestPath string
		printReport  bool
		mockDelay    time.Duration
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a batch job from a YAML manifest",
		Long: `Run a batch job described by a YAML manifest.

The manifest names the job, lists its video URLs (or a playlist URL to
expand via yt-dlp), and may override the configured batch defaults. The
command blocks until the batch finishes; progress is logged while it runs.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBatch(cmd, manifestPath, printReport, mockDelay)
		},
	}

	cmd.Flags().StringVarP(&manifestPath, "manifest", "m", "", "Path to the batch manifest YAML file")
	cmd.Flags().BoolVar(&printReport, "report", true, "Print the batch report when the run finishes")
	cmd.Flags().DurationVar(&mockDelay, "mock-delay", 0, "Simulated per-item pipeline latency")
	_ = cmd.MarkFlagRequired("manifest")
	return cmd
}

func runBatch(cmd *cobra.Command, manifestPath string, printReport bool, mockDelay time.Duration) error {
	appConfig := GetConfig()

	manifest, err := loadManifest(manifestPath)
	if err != nil {
		return err
	}

	batchConfig, err := buildBatchConfig(appConfig.Batch, manifest.Config)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(batchConfig.OutputDirectory, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTelemetry := setupTelemetry()
	defer shutdownTelemetry()

	publisher, err := buildPublisher(appConfig.NATS)
	if err != nil {
		return err
	}
	defer publisher.Close()

	batchService := buildBatchService(publisher, mockDelay)

	jobID, err := createJob(ctx, batchService, manifest, batchConfig)
	if err != nil {
		return err
	}

	done := make(chan struct{})
	go logProgress(ctx, batchService, jobID, done)

	err = batchService.StartBatchJob(ctx, jobID)
	close(done)
	if err != nil {
		return err
	}

	if printReport {
		report, reportErr := batchService.GenerateBatchReport(ctx, jobID)
		if reportErr != nil {
			return reportErr
		}
		fmt.Fprintln(cmd.OutOrStdout(), report)
	}
	return nil
}

func loadManifest(path string) (*batchManifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	var manifest batchManifest
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}

	if manifest.Name == "" {
		return nil, errors.New("manifest must name the batch job")
	}
	if len(manifest.URLs) == 0 && manifest.Playlist == "" {
		return nil, errors.New("manifest must list urls or a playlist")
	}
	return &manifest, nil
}

// buildBatchConfig merges the configured defaults with manifest overrides.
func buildBatchConfig(defaults config.BatchConfig, overrides manifestConfig) (entity.BatchConfig, error) {
	batchConfig := entity.BatchConfig{
		VideoConfig:         overrides.VideoConfig,
		OutputDirectory:     defaults.OutputDirectory,
		EnableAIAnalysis:    defaults.EnableAIAnalysis,
		EnableTranscript:    defaults.EnableTranscript,
		EnableSocialFormats: defaults.EnableSocialFormats,
		ConcurrentJobs:      defaults.ConcurrentJobs,
		RetryFailed:         defaults.RetryFailed,
		MaxRetries:          defaults.MaxRetries,
	}

	if overrides.OutputDirectory != nil {
		batchConfig.OutputDirectory = *overrides.OutputDirectory
	}
	if overrides.ConcurrentJobs != nil {
		batchConfig.ConcurrentJobs = *overrides.ConcurrentJobs
	}
	if overrides.RetryFailed != nil {
		batchConfig.RetryFailed = *overrides.RetryFailed
	}
	if overrides.MaxRetries != nil {
		batchConfig.MaxRetries = *overrides.MaxRetries
	}
	if overrides.EnableAIAnalysis != nil {
		batchConfig.EnableAIAnalysis = *overrides.EnableAIAnalysis
	}
	if overrides.EnableTranscript != nil {
		batchConfig.EnableTranscript = *overrides.EnableTranscript
	}
	if overrides.EnableSocialFormats != nil {
		batchConfig.EnableSocialFormats = *overrides.EnableSocialFormats
	}

	formats := defaults.ExportFormats
	if overrides.ExportFormats != nil {
		formats = overrides.ExportFormats
	}
	for _, raw := range formats {
		format, err := valueobject.NewExportFormat(raw)
		if err != nil {
			return entity.BatchConfig{}, err
		}
		batchConfig.ExportFormats = append(batchConfig.ExportFormats, format)
	}

	return batchConfig, batchConfig.Validate()
}

// setupTelemetry installs the OpenTelemetry meter provider and returns its
// shutdown function.
func setupTelemetry() func() {
	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(resource.NewSchemaless(
			attribute.String("service.name", "video-nugget"),
		)),
	)
	otel.SetMeterProvider(provider)

	return func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := provider.Shutdown(shutdownCtx); err != nil {
			slogger.WarnNoCtx("Failed to shut down meter provider", slogger.Field("error", err.Error()))
		}
	}
}

func buildPublisher(natsConfig config.NATSConfig) (outbound.EventPublisher, error) {
	if !natsConfig.Enabled {
		return mock.NewMockEventPublisher(), nil
	}
	return messaging.NewNATSEventPublisher(natsConfig)
}

// buildBatchService wires the engine with the built-in mock pipeline. The
// real extraction pipeline is an external collaborator plugged in the same
// way once available.
func buildBatchService(publisher outbound.EventPublisher, mockDelay time.Duration) *service.DefaultBatchService {
	store := storage.NewMemoryJobStore()
	exporter := export.NewFileExporter()
	pipeline := mock.NewMockVideoPipeline(exporter).WithDelay(mockDelay)

	metrics, err := worker.NewPipelineMetrics()
	if err != nil {
		slogger.WarnNoCtx("Failed to create pipeline metrics", slogger.Field("error", err.Error()))
	}

	tracker := worker.NewProgressTracker(store)
	scheduler := worker.NewScheduler(pipeline, tracker, metrics)
	return service.NewBatchService(store, scheduler, publisher, playlist.NewYtDlpResolver())
}

func createJob(
	ctx context.Context,
	batchService *service.DefaultBatchService,
	manifest *batchManifest,
	batchConfig entity.BatchConfig,
) (jobID uuid.UUID, err error) {
	if manifest.Playlist != "" {
		return batchService.CreateBatchFromPlaylist(ctx, manifest.Playlist, manifest.Name, batchConfig)
	}
	return batchService.CreateBatchJob(ctx, manifest.Name, manifest.URLs, batchConfig)
}

// logProgress polls the job while the batch runs.
func logProgress(ctx context.Context, batchService *service.DefaultBatchService, jobID uuid.UUID, done <-chan struct{}) {
	ticker := time.NewTicker(progressPollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			job, err := batchService.GetBatchJob(ctx, jobID)
			if err != nil {
				continue
			}
			progress := job.Progress()
			fields := slogger.Fields3(
				"job_id", jobID.String(),
				"processed", progress.ProcessedVideos,
				"percentage", progress.Percentage,
			)
			if progress.ETAMinutes != nil {
				fields["eta_minutes"] = *progress.ETAMinutes
			}
			slogger.Info(ctx, "Batch progress", fields)
		}
	}
}
