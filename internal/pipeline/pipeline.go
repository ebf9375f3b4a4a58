// SPDX-License-Identifier: MPL-2.0

package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/jlinker/jlinker/internal/archive"
	"github.com/jlinker/jlinker/internal/download"
	"github.com/jlinker/jlinker/internal/jdk"
	"github.com/jlinker/jlinker/internal/jlink"
)

// Directory names below the build directory.
const (
	DownloadsDirName = "downloads"
	JdksDirName      = "jdks"
	ImagesDirName    = "images"
)

// ErrNoJavaHome is returned when no host JDK is configured.
var ErrNoJavaHome = errors.New("no host JDK configured")

type (
	// Request is one image build.
	Request struct {
		Config jlink.ImageConfig
		// LocalModulePath holds the application's module directories and jars.
		LocalModulePath []string
		// Target is the cross-target JDK, or nil to link for the host.
		Target *jdk.Descriptor
		// BuildDir holds downloads, extracted JDKs and images.
		BuildDir string
		// OutputDir overrides <build>/images/<name>.
		OutputDir string
	}

	// Result describes a planned or built image.
	Result struct {
		OutputDir string
		Args      []string
		// TargetHome is the cross-target JDK home, empty for host builds.
		TargetHome string
		// TargetRelease is the cross-target JDK's release metadata.
		TargetRelease *jdk.ReleaseMetadata
	}

	// Pipeline runs image builds with one host JDK.
	Pipeline struct {
		javaHome     string
		currentHome  string
		repositories []jdk.Repository
		registry     *jlink.ToolRegistry
		invokeOpts   []jlink.Option

		downloader *download.Downloader
		extractor  *archive.Extractor
		resolver   *jdk.Resolver
		logger     *log.Logger
	}

	// Option configures a Pipeline.
	Option func(*Pipeline)
)

// WithJavaHome sets the host JDK whose jlink builds every image.
func WithJavaHome(home string) Option {
	return func(p *Pipeline) {
		p.javaHome = home
	}
}

// WithCurrentJavaHome sets the JDK the current process runs in. Together with
// WithToolRegistry it enables in-process linking when it equals the host JDK.
func WithCurrentJavaHome(home string) Option {
	return func(p *Pipeline) {
		p.currentHome = home
	}
}

// WithToolRegistry sets the registry searched for an in-process jlink.
func WithToolRegistry(r *jlink.ToolRegistry) Option {
	return func(p *Pipeline) {
		p.registry = r
	}
}

// WithRepositories sets the repositories coordinate descriptors resolve against.
func WithRepositories(repos []jdk.Repository) Option {
	return func(p *Pipeline) {
		p.repositories = repos
	}
}

// WithInvokeOptions passes options to the selected jlink invoker.
func WithInvokeOptions(opts ...jlink.Option) Option {
	return func(p *Pipeline) {
		p.invokeOpts = append(p.invokeOpts, opts...)
	}
}

// WithDownloader replaces the default downloader.
func WithDownloader(d *download.Downloader) Option {
	return func(p *Pipeline) {
		p.downloader = d
	}
}

// WithLogger sets the logger shared by every step.
func WithLogger(l *log.Logger) Option {
	return func(p *Pipeline) {
		p.logger = l
	}
}

// New creates a Pipeline.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "jlinker"})
	}
	if p.downloader == nil {
		p.downloader = download.New(download.WithLogger(p.logger))
	}
	p.extractor = archive.New(archive.WithLogger(p.logger))
	p.resolver = jdk.NewResolver(jdk.WithResolverLogger(p.logger))
	return p
}

// JavaHome returns the host JDK home.
func (p *Pipeline) JavaHome() string {
	return p.javaHome
}

// ResolveAndDownload fetches spec.Source to spec.Destination and verifies it.
func (p *Pipeline) ResolveAndDownload(ctx context.Context, spec download.Spec) error {
	_, err := p.downloader.Download(ctx, spec)
	return err
}

// Extract replaces destDir with the contents of archivePath.
func (p *Pipeline) Extract(archivePath, destDir string) error {
	return p.extractor.Extract(archivePath, destDir)
}

// ResolveCrossTargetJmods returns the jmods directory of the JDK below root.
func (p *Pipeline) ResolveCrossTargetJmods(root string) (string, error) {
	return p.resolver.ResolveJmodsDir(root)
}

// BuildAndInvoke links cfg into outputDir with the host JDK's jlink.
func (p *Pipeline) BuildAndInvoke(ctx context.Context, cfg *jlink.ImageConfig, localEntries []string, crossJmods, outputDir string) error {
	linker, err := p.linker()
	if err != nil {
		return err
	}
	return linker.Link(ctx, &jlink.LinkRequest{
		Config:           *cfg,
		LocalModulePath:  localEntries,
		CrossTargetJmods: crossJmods,
		OutputDir:        outputDir,
	})
}

// Plan prepares everything BuildImage needs and returns the jlink arguments
// without linking. A cross-target JDK is still downloaded and extracted, as
// its jmods directory is part of the arguments.
func (p *Pipeline) Plan(ctx context.Context, req *Request) (*Result, error) {
	if err := req.Config.Validate(); err != nil {
		return nil, err
	}

	res := &Result{OutputDir: p.outputDir(req)}

	var jmods string
	if req.Target != nil {
		inst, err := p.prepareTarget(ctx, req.Target, req.BuildDir)
		if err != nil {
			return nil, err
		}
		jmods = inst.JmodsDir()
		res.TargetHome = inst.Home
		res.TargetRelease = inst.Release
		p.checkFeatureRelease(req.Target.Name, inst.Release)
	}

	linker, err := p.linker()
	if err != nil {
		return nil, err
	}
	res.Args, err = linker.Plan(&jlink.LinkRequest{
		Config:           req.Config,
		LocalModulePath:  req.LocalModulePath,
		CrossTargetJmods: jmods,
		OutputDir:        res.OutputDir,
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// BuildImage runs the whole chain: prepare the cross-target JDK if any,
// then link the image.
func (p *Pipeline) BuildImage(ctx context.Context, req *Request) (*Result, error) {
	res, err := p.Plan(ctx, req)
	if err != nil {
		return nil, err
	}

	var jmods string
	if res.TargetHome != "" {
		jmods = filepath.Join(res.TargetHome, jdk.JmodsDirName)
	}
	if err := p.BuildAndInvoke(ctx, &req.Config, req.LocalModulePath, jmods, res.OutputDir); err != nil {
		return nil, err
	}
	return res, nil
}

// ImageDir returns <build>/images/<name>.
func ImageDir(buildDir, name string) string {
	return filepath.Join(buildDir, ImagesDirName, name)
}

// JdkDir returns <build>/jdks/<name>, where a cross-target JDK is extracted.
func JdkDir(buildDir, name string) string {
	return filepath.Join(buildDir, JdksDirName, name)
}

// DefaultOutputDir returns where an image is written when no output
// directory is given: <build>/images/<target> for a cross-target image,
// otherwise <build>/images/<application>, falling back to the first
// launcher name.
func DefaultOutputDir(buildDir string, cfg *jlink.ImageConfig, target *jdk.Descriptor) string {
	if target != nil {
		return ImageDir(buildDir, target.Name)
	}
	name := cfg.ApplicationName
	if name == "" {
		if launchers := cfg.EffectiveLaunchers(); len(launchers) > 0 {
			name = launchers[0].Name
		}
	}
	return ImageDir(buildDir, name)
}

func (p *Pipeline) outputDir(req *Request) string {
	if req.OutputDir != "" {
		return req.OutputDir
	}
	return DefaultOutputDir(req.BuildDir, &req.Config, req.Target)
}

func (p *Pipeline) linker() (*jlink.Linker, error) {
	if p.javaHome == "" {
		return nil, ErrNoJavaHome
	}
	invoker := jlink.SelectInvoker(p.javaHome, p.currentHome, p.registry, p.invokeOpts...)
	return jlink.NewLinker(invoker, jlink.WithLinkerLogger(p.logger)), nil
}

// prepareTarget makes the descriptor's JDK available locally and resolves it.
func (p *Pipeline) prepareTarget(ctx context.Context, d *jdk.Descriptor, buildDir string) (*jdk.Installation, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}

	root := d.Home
	if !d.IsInstalled() {
		archivePath, err := p.fetchArchive(ctx, d, buildDir)
		if err != nil {
			return nil, err
		}
		root = JdkDir(buildDir, d.Name)
		if err := p.Extract(archivePath, root); err != nil {
			return nil, err
		}
	}

	return p.resolver.ResolveWithJmods(root)
}

// fetchArchive returns the verified archive of d in <build>/downloads,
// downloading it only when no file there matches the checksum.
func (p *Pipeline) fetchArchive(ctx context.Context, d *jdk.Descriptor, buildDir string) (string, error) {
	name, err := d.ArchiveName()
	if err != nil {
		return "", err
	}
	source, err := d.DownloadSource(p.repositories)
	if err != nil {
		return "", err
	}

	checksum := d.Checksum
	if checksum == "" {
		if checksum, err = p.downloader.FetchChecksum(ctx, d.ChecksumURL, name); err != nil {
			return "", err
		}
	}

	dest := filepath.Join(buildDir, DownloadsDirName, name)
	alg, err := download.ResolveAlgorithm(d.ChecksumAlgorithm)
	if err != nil {
		return "", err
	}
	if err := download.VerifyFile(dest, checksum, alg); err == nil {
		p.logger.Info("using cached archive", "jdk", d.Name, "file", dest)
		return dest, nil
	}

	p.logger.Info("downloading JDK", "jdk", d.Name, "file", name)
	err = p.ResolveAndDownload(ctx, download.Spec{
		Source:           source,
		ExpectedChecksum: checksum,
		Algorithm:        d.ChecksumAlgorithm,
		Destination:      dest,
	})
	if err != nil {
		return "", err
	}
	return dest, nil
}

// checkFeatureRelease warns when the host jlink and the target JDK differ
// in feature release, which jlink rejects for most module sets.
func (p *Pipeline) checkFeatureRelease(target string, targetRelease *jdk.ReleaseMetadata) {
	data, err := os.ReadFile(filepath.Join(p.javaHome, jdk.ReleaseFileName))
	if err != nil {
		p.logger.Debug("cannot read host release file", "java_home", p.javaHome, "err", err)
		return
	}
	host, err := jdk.ParseRelease(data)
	if err != nil {
		p.logger.Debug("cannot parse host release file", "java_home", p.javaHome, "err", err)
		return
	}
	if !host.SameFeatureRelease(targetRelease) {
		p.logger.Warn("host and target JDK feature releases differ",
			"jdk", target,
			"host", host.JavaVersion,
			"target", targetRelease.JavaVersion)
	}
}
