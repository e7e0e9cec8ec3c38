package dtol

/*
#include <windows.h>
#include <oldaapi.h>
*/
import "C"

// enumBoardTrampoline bridges olDaEnumBoards' C callback to the Go visitor
// parked by EnumBoards.  Returning TRUE continues enumeration.
//
//export enumBoardTrampoline
func enumBoardTrampoline(lpszName, lpszEntry C.LPSTR, lParam C.LPARAM) C.BOOL {
	if enumVisitor == nil {
		return C.FALSE
	}
	if enumVisitor(C.GoString((*C.char)(lpszName)), C.GoString((*C.char)(lpszEntry))) {
		return C.TRUE
	}
	return C.FALSE
}
