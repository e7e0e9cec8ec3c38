/*Package openlayers provides an interface to Data Translation DAC boards
through the Open Layers driver API.

The driver surface consumed from the vendor is expressed as the Driver
interface; the production implementation lives in the dtol package and talks
to oldaapi via cgo.  Everything in this package is pure Go so that the
session lifecycle and voltage conversion can be exercised without the vendor
SDK installed.

A Session drives exactly one board.  There is no multi-board support; the
first board that opens during enumeration wins.

Basic usage is as followed:
 ses := openlayers.NewSession(dtol.Driver{})
 err := ses.Initialize() // opens the first board and configures D/A subsystem 0
 if errors.Is(err, openlayers.ErrNoBoards) {
 	log.Fatal("no boards installed")
 }
 if err != nil {
 	log.Fatal(err)
 }
 defer ses.Cleanup()
 // write 2.5V on channel 0.  The subsystem's range, encoding and
 // resolution are queried fresh on every call, so external configuration
 // changes are honored without restarting.
 err = ses.SetVoltage(0, 2.5)

Session methods are not safe for concurrent use; serialize access externally.
The HTTP layer in generichttp/daq does this with the locker middleware.
*/
package openlayers
