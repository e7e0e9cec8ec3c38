package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/cenkalti/backoff"
	"github.com/go-chi/chi/middleware"
	"github.com/knadh/koanf"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"goji.io"
	"goji.io/pat"
	yml "gopkg.in/yaml.v2"

	"github.com/davenportlab/oldaq/dtol"
	"github.com/davenportlab/oldaq/generichttp/daq"
	"github.com/davenportlab/oldaq/openlayers"
	"github.com/davenportlab/oldaq/server/middleware/locker"
	"github.com/davenportlab/oldaq/server/middleware/throttle"
)

var (
	// Version is the version number.  Typically injected via ldflags with git build
	Version = "1"

	// ConfigFileName is what it sounds like
	ConfigFileName = "oldaqsrv.yml"
	k              = koanf.New(".")
)

// Config holds the initialization parameters for the DAC server.
// It is to be populated from the yaml config file.
type Config struct {
	// Addr is the address to listen at
	Addr string `koanf:"addr" yaml:"addr"`

	// Endpoint is the stem the DAC routes are served under,
	// ex. Endpoint="/daq" produces routes of /daq/output, etc.
	Endpoint string `koanf:"endpoint" yaml:"endpoint"`

	// MaxWriteHz bounds the rate of requests reaching the board.
	// The Open Layers driver misbehaves when hammered.
	MaxWriteHz float64 `koanf:"maxwritehz" yaml:"maxwritehz"`

	// BootWaitSec is how long to keep retrying enumeration at startup
	// before serving without a board.  The driver can lag board
	// discovery for a while after system boot.  Zero tries exactly once.
	BootWaitSec float64 `koanf:"bootwaitsec" yaml:"bootwaitsec"`
}

func setupconfig() {
	k.Load(structs.Provider(Config{
		Addr:        ":8000",
		Endpoint:    "/daq",
		MaxWriteHz:  100,
		BootWaitSec: 30}, "koanf"), nil)
	if err := k.Load(file.Provider(ConfigFileName), yaml.Parser()); err != nil {
		errtxt := err.Error()
		if !strings.Contains(errtxt, "no such") { // file missing, who cares
			log.Fatalf("error loading config: %v", err)
		}
	}
}

func root() {
	str := `oldaqsrv drives a Data Translation DAC board and exposes an HTTP interface to it
This enables a server-client architecture, and the clients can leverage the
excellent HTTP libraries for any programming language.

Usage:
	oldaqsrv <command>

Commands:
	run
	help
	mkconf
	conf
	version`
	fmt.Println(str)
}

func help() {
	str := `oldaqsrv is amenable to configuration via its .yaml file.  For a primer on YAML, see
https://yaml.org/start.html

Without a board installed the server still runs; POST to <endpoint>/initialize
once the hardware is present.  The reply {'bool': false} means enumeration
completed without finding a board.

Routes served under the configured endpoint:
- POST /initialize    bring up the first available board
- POST /output        {'channel': n, 'voltage': v}
- POST /cleanup       release the board
- GET  /board         display strings of the held board
- GET  /status        last driver status code
- GET  /configured    true when writes will be accepted
- GET  /error-string  {'int': code} -> {'str': text}
- GET/POST /lock      serialize access between clients`
	fmt.Println(str)
}

func mkconf() {
	c := Config{}
	err := k.Unmarshal("", &c)
	if err != nil {
		log.Fatal(err)
	}
	f, err := os.Create(ConfigFileName)
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()
	err = yml.NewEncoder(f).Encode(c)
	if err != nil {
		log.Fatal(err)
	}
}

func printconf() {
	c := Config{}
	k.Unmarshal("", &c)
	err := yml.NewEncoder(os.Stdout).Encode(c)
	if err != nil {
		log.Fatal(err)
	}
}

func pversion() {
	fmt.Printf("oldaqsrv version %v\n", Version)
}

// bringup initializes the session, retrying while the driver reports no
// boards.  Hard driver failures are not retried.  A nonpositive wait makes
// a single attempt; backoff treats MaxElapsedTime zero as retry-forever.
func bringup(ses *openlayers.Session, wait time.Duration) error {
	if wait <= 0 {
		return ses.Initialize()
	}
	op := func() error {
		err := ses.Initialize()
		if errors.Is(err, openlayers.ErrNoBoards) {
			return err
		}
		if err != nil {
			return backoff.Permanent(err)
		}
		return nil
	}
	return backoff.Retry(op, &backoff.ExponentialBackOff{
		InitialInterval:     1 * time.Second,
		RandomizationFactor: 0,
		Multiplier:          2,
		MaxInterval:         10 * time.Second,
		MaxElapsedTime:      wait,
		Clock:               backoff.SystemClock})
}

func run() {
	c := Config{}
	err := k.Unmarshal("", &c)
	if err != nil {
		log.Fatal(err)
	}
	ses := openlayers.NewSession(dtol.Driver{})
	log.Println("connecting to the first Open Layers board.  If the program is hanging, the driver has glitched;\n reboot the computer")
	err = bringup(ses, time.Duration(c.BootWaitSec*float64(time.Second)))
	if errors.Is(err, openlayers.ErrNoBoards) {
		log.Println("no boards found; serving anyway, POST to initialize once hardware is present")
	} else if err != nil {
		log.Fatal(err)
	} else {
		log.Printf("board %s (%s) configured for single-value output", ses.Board().Name, ses.Board().Entry)
	}

	httpD := daq.NewHTTPDAC(ses)
	lock := locker.New()
	locker.Inject(httpD, lock)

	mux := goji.SubMux()
	httpD.RouteTable.Bind(mux)

	stem := c.Endpoint
	if !strings.HasPrefix(stem, "/") {
		stem = "/" + stem
	}
	if !strings.HasSuffix(stem, "/") {
		stem = stem + "/"
	}
	routes := httpD.RouteTable.Endpoints()

	burst := int(c.MaxWriteHz)
	if burst < 1 {
		burst = 1
	}
	rootMux := goji.NewMux()
	rootMux.Use(middleware.Logger)
	rootMux.Use(lock.Check)
	rootMux.Use(throttle.New(c.MaxWriteHz, burst).Check)
	rootMux.Handle(pat.New(stem+"*"), mux)
	rootMux.HandleFunc(pat.Get("/endpoints"), func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		err := json.NewEncoder(w).Encode(map[string][]string{stem: routes})
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGABRT, syscall.SIGTERM)
	go func() {
		<-ch
		err := ses.Cleanup()
		if err != nil {
			log.Println("error releasing board:", err)
		}
		os.Exit(0)
	}()
	log.Println("now listening for requests at ", c.Addr)
	log.Fatal(http.ListenAndServe(c.Addr, rootMux))
}

func main() {
	var cmd string
	args := os.Args
	if len(args) == 1 {
		root()
		return
	}
	setupconfig()
	cmd = args[1]
	cmd = strings.ToLower(cmd)
	switch cmd {
	case "help":
		help()
		return
	case "mkconf":
		mkconf()
		return
	case "conf":
		printconf()
		return
	case "run":
		run()
		return
	case "version":
		pversion()
		return
	default:
		log.Fatal("unknown command")
	}
}
