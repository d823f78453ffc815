package main

import (
	"flag"
	"os"

	"github.com/janpfeifer/HeartPairs/internal/frontend"
	"github.com/maxence-charriere/go-app/v10/pkg/app"
	"k8s.io/klog/v2"
)

func main() {
	// Initialize klog for WASM, forcing logs to stderr (console)
	fs := flag.NewFlagSet("klog", flag.ContinueOnError)
	klog.InitFlags(fs)
	fs.Set("logtostderr", "true")
	klog.SetOutput(os.Stderr)
	klog.Infof("WASM started!")

	// The game is a single page; /watch follows the live sessions.
	app.Route("/", func() app.Composer { return &frontend.Home{} })
	app.Route("/watch", func() app.Composer { return &frontend.Watch{} })

	// Initialize the global app state manager
	frontend.InitState()

	// When building for WEB (GOOS=js GOARCH=wasm), app.RunWhenOnBrowser() executes the frontend logic
	app.RunWhenOnBrowser()
}
