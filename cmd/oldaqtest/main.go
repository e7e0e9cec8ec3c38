// Command oldaqtest exercises a Data Translation board interactively from
// the console, for hardware bring-up with a scope on the output channel.
package main

import (
	"bufio"
	"errors"
	"log"
	"os"
	"time"

	"github.com/theckman/yacspin"

	"github.com/davenportlab/oldaq/dtol"
	"github.com/davenportlab/oldaq/openlayers"
)

func main() {
	reader := bufio.NewReader(os.Stdin)
	ses := openlayers.NewSession(dtol.Driver{})

	cfg := yacspin.Config{
		Frequency: 100 * time.Millisecond,
		CharSet:   yacspin.CharSets[11],
		Suffix:    " enumerating Open Layers boards",
	}
	spinner, err := yacspin.New(cfg)
	if err != nil {
		log.Fatal(err)
	}
	spinner.Start()
	err = ses.Initialize()
	spinner.Stop()
	if errors.Is(err, openlayers.ErrNoBoards) {
		log.Fatal("no Open Layers boards installed")
	}
	if err != nil {
		var de *openlayers.DriverError
		if errors.As(err, &de) {
			log.Fatalf("%v: %s", err, ses.TranslateError(de.Code))
		}
		log.Fatal(err)
	}
	defer ses.Cleanup()
	log.Printf("opened board %s with entry %s", ses.Board().Name, ses.Board().Entry)

	channel := uint(0)
	log.Println("advancing to basic range testing on channel 0")
	log.Println("press enter to command -10V")
	reader.ReadString('\n')
	if err := ses.SetVoltage(channel, -10); err != nil {
		log.Fatal(err)
	}
	log.Println("press enter to command 0V")
	reader.ReadString('\n')
	if err := ses.SetVoltage(channel, 0); err != nil {
		log.Fatal(err)
	}
	log.Println("press enter to command +10V")
	reader.ReadString('\n')
	if err := ses.SetVoltage(channel, 10); err != nil {
		log.Fatal(err)
	}

	log.Println("advancing to step test")
	log.Println("press enter to reset to -10V")
	reader.ReadString('\n')
	ses.SetVoltage(channel, -10)
	log.Println("press enter to step to +10V (scope should be ready to trigger with short timebase)")
	reader.ReadString('\n')
	ses.SetVoltage(channel, 10)
	time.Sleep(time.Second)
	ses.SetVoltage(channel, 0)

	log.Println("advancing to ramp test")
	log.Println("start=-10V, stop=+10V, step=0.05V, dT=15ms, steps=400 (~6s)")
	log.Println("press enter to start")
	reader.ReadString('\n')
	var (
		out  float32 = -10
		stop float32 = 10
		step float32 = 0.05
		dT           = 15 * time.Millisecond
	)
	for ; out <= stop; out += step {
		if err := ses.SetVoltage(channel, out); err != nil {
			var de *openlayers.DriverError
			if errors.As(err, &de) {
				log.Fatalf("%v: %s", err, ses.TranslateError(de.Code))
			}
			log.Fatal(err)
		}
		time.Sleep(dT)
	}
	log.Println("test complete")
}
