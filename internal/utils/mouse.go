package utils

import (
	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

var (
	XConn *xgb.Conn
	XRoot xproto.Window
)

func InitX11() error {
	var err error
	XConn, err = xgb.NewConn()
	if err != nil {
		return err
	}

	setup := xproto.Setup(XConn)
	XRoot = setup.DefaultScreen(XConn).Root
	return nil
}

func CloseX11() {
	if XConn != nil {
		XConn.Close()
		XConn = nil
	}
}

// GetGlobalMousePosition queries the pointer on the root window, so it keeps
// reporting while the cursor is outside the demo window.
func GetGlobalMousePosition() (int, int, error) {
	if XConn == nil {
		if err := InitX11(); err != nil {
			return 0, 0, err
		}
	}

	reply, err := xproto.QueryPointer(XConn, XRoot).Reply()
	if err != nil {
		return 0, 0, err
	}

	return int(reply.RootX), int(reply.RootY), nil
}

// GetGlobalButtons reports the left, middle and right pointer buttons.
func GetGlobalButtons() (left, middle, right bool, err error) {
	if XConn == nil {
		if err := InitX11(); err != nil {
			return false, false, false, err
		}
	}

	reply, err := xproto.QueryPointer(XConn, XRoot).Reply()
	if err != nil {
		return false, false, false, err
	}

	return reply.Mask&xproto.KeyButMaskButton1 != 0,
		reply.Mask&xproto.KeyButMaskButton2 != 0,
		reply.Mask&xproto.KeyButMaskButton3 != 0,
		nil
}
