package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"runtime"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/amosavian/WebNativeBridgeKit/capability/app"
	"github.com/amosavian/WebNativeBridgeKit/capability/biometrics"
	"github.com/amosavian/WebNativeBridgeKit/capability/contacts"
	"github.com/amosavian/WebNativeBridgeKit/capability/device"
	"github.com/amosavian/WebNativeBridgeKit/capability/haptics"
	"github.com/amosavian/WebNativeBridgeKit/capability/security"
	"github.com/amosavian/WebNativeBridgeKit/capability/view"
	"github.com/amosavian/WebNativeBridgeKit/dispatch"
	"github.com/amosavian/WebNativeBridgeKit/event"
	"github.com/amosavian/WebNativeBridgeKit/module"
	"github.com/amosavian/WebNativeBridgeKit/policy"
	"github.com/amosavian/WebNativeBridgeKit/registry"
	"github.com/amosavian/WebNativeBridgeKit/store"
	"github.com/amosavian/WebNativeBridgeKit/surface/gojasurface"
)

func main() {
	var (
		scriptFile  = flag.String("script", "", "Path to page script to run")
		pageURL     = flag.String("url", "https://localhost/", "Page URL the surface reports")
		policyFile  = flag.String("policy", "", "Path to HCL bridge policy")
		storePath   = flag.String("store", "", "Path to SQLite credential store (default in-memory)")
		wait        = flag.Duration("wait", 200*time.Millisecond, "Grace period for pending async calls")
		verbose     = flag.Bool("v", false, "Verbose logging")
		list        = flag.Bool("list", false, "List registered modules and exit")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
	)
	flag.Parse()

	if *scriptFile == "" && !*interactive && !*list {
		fmt.Fprintln(os.Stderr, "Usage: run -script <page.js> [-url https://...] [-policy bridge.hcl]")
		fmt.Fprintln(os.Stderr, "       run -list")
		fmt.Fprintln(os.Stderr, "       run -i  (interactive mode)")
		os.Exit(1)
	}

	if err := run(*scriptFile, *pageURL, *policyFile, *storePath, *wait, *verbose, *list, *interactive); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// hostDevice backs the device module with values from the Go runtime.
type hostDevice struct{}

func (hostDevice) Info(context.Context) (device.Info, error) {
	return device.Info{
		Model:       runtime.GOARCH,
		OSName:      runtime.GOOS,
		OSVersion:   runtime.Version(),
		Locale:      os.Getenv("LANG"),
		ScreenScale: 1,
	}, nil
}

// hostApp opens URLs by printing them; a playground has no real browser.
type hostApp struct{}

func (hostApp) Version(context.Context) (string, string, error) {
	return "0.1.0", "dev", nil
}

func (hostApp) OpenURL(_ context.Context, url string) (bool, error) {
	fmt.Printf("[app] openURL: %s\n", url)
	return true, nil
}

type hostHaptics struct{}

func (hostHaptics) Play(_ context.Context, pattern string) error {
	fmt.Printf("[haptics] play: %s\n", pattern)
	return nil
}

func (hostHaptics) Vibrate(_ context.Context, d time.Duration) error {
	fmt.Printf("[haptics] vibrate: %s\n", d)
	return nil
}

type hostView struct{}

func (hostView) CaptureScreenshot(context.Context) ([]byte, error) {
	return []byte{0x89, 'P', 'N', 'G'}, nil
}

func (hostView) Print(context.Context) error {
	fmt.Println("[view] print requested")
	return nil
}

type bridgeHost struct {
	reg     *registry.Registry
	core    *dispatch.Core
	hub     *event.Hub
	mgr     *event.Manager
	descs   []*module.Descriptor
	closers []func()
}

func (h *bridgeHost) close() {
	h.mgr.Close()
	for _, fn := range h.closers {
		fn()
	}
}

func buildHost(policyFile, storePath string, logger *zap.Logger) (*bridgeHost, error) {
	var gate dispatch.Gate
	if policyFile != "" {
		p, err := policy.Load(policyFile)
		if err != nil {
			return nil, err
		}
		gate = p
	}

	var secrets store.SecureStore
	var closers []func()
	if storePath != "" {
		sq, err := store.OpenSQLite(storePath)
		if err != nil {
			return nil, err
		}
		closers = append(closers, func() { sq.Close() })
		secrets = sq
	} else {
		secrets = store.NewMemory()
	}

	hub := event.NewHub()
	addressBook := contacts.NewMemoryStore(
		contacts.Contact{ID: "c1", Name: "Ada Lovelace", Emails: []string{"ada@example.com"}},
		contacts.Contact{ID: "c2", Name: "Charles Babbage", Phones: []string{"+44 20 7946 0001"}},
	)

	type build struct {
		name string
		fn   func() (*module.Descriptor, error)
	}
	builds := []build{
		{"device", func() (*module.Descriptor, error) { return device.New(hostDevice{}) }},
		{"app", func() (*module.Descriptor, error) { return app.New(hostApp{}) }},
		{"contacts", func() (*module.Descriptor, error) { return contacts.New(addressBook) }},
		{"haptics", func() (*module.Descriptor, error) { return haptics.New(hostHaptics{}) }},
		{"security", func() (*module.Descriptor, error) { return security.New(secrets) }},
		{"biometrics", func() (*module.Descriptor, error) { return biometrics.New(secrets) }},
		{"view", func() (*module.Descriptor, error) { return view.New(hostView{}, hub) }},
	}

	reg := registry.New(registry.WithLogger(logger))
	var descs []*module.Descriptor
	for _, b := range builds {
		desc, err := b.fn()
		if err != nil {
			return nil, fmt.Errorf("build %s module: %w", b.name, err)
		}
		if err := desc.RegisterInto(reg); err != nil {
			return nil, fmt.Errorf("register %s module: %w", b.name, err)
		}
		descs = append(descs, desc)
	}

	return &bridgeHost{
		reg:     reg,
		core:    dispatch.NewCore(reg, dispatch.Options{Gate: gate, Logger: logger}),
		hub:     hub,
		mgr:     event.NewManager(logger),
		descs:   descs,
		closers: closers,
	}, nil
}

func run(scriptFile, pageURL, policyFile, storePath string, wait time.Duration, verbose, listOnly, interactive bool) error {
	logger := zap.NewNop()
	if verbose {
		var err error
		if logger, err = zap.NewDevelopment(); err != nil {
			return err
		}
	}

	host, err := buildHost(policyFile, storePath, logger)
	if err != nil {
		return err
	}
	defer host.close()

	if listOnly {
		fmt.Println("Registered modules:")
		modules := host.reg.Modules()
		sort.Slice(modules, func(i, j int) bool { return modules[i] < modules[j] })
		for _, name := range modules {
			fmt.Printf("  %s\n", name)
			fns := host.reg.Functions(name)
			sort.Slice(fns, func(i, j int) bool { return fns[i] < fns[j] })
			for _, fn := range fns {
				fmt.Printf("    %s.%s(args)\n", name, fn)
			}
		}
		return nil
	}

	if interactive {
		return runInteractive(host)
	}

	script, err := os.ReadFile(scriptFile)
	if err != nil {
		return fmt.Errorf("read script: %w", err)
	}

	surface := gojasurface.New(pageURL,
		gojasurface.WithLogger(logger),
		gojasurface.OnClose(host.mgr.Detach))
	defer surface.Close()

	for _, desc := range host.descs {
		desc.AttachEvents(host.mgr, surface)
	}
	if err := surface.InjectModules(host.core, host.descs...); err != nil {
		return err
	}

	if err := surface.EvaluateScript(context.Background(), string(script)); err != nil {
		return err
	}
	// Let promises settled off-loop land before tearing down.
	time.Sleep(wait)
	return nil
}
