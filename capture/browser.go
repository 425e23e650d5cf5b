package capture

import (
	"fmt"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// Session is a controlled browser with one page sized to the stage.
type Session struct {
	launcher *launcher.Launcher
	browser  *rod.Browser
	Page     *rod.Page
}

// NewSession launches a browser and opens a blank page with a fixed
// viewport matching the composition size.
func NewSession(headless bool, width, height int, timeout time.Duration) (*Session, error) {
	l := launcher.New().Headless(headless)
	url, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launch browser: %w", err)
	}

	browser := rod.New().ControlURL(url)
	if err := browser.Connect(); err != nil {
		l.Cleanup()
		return nil, fmt.Errorf("connect browser: %w", err)
	}

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		browser.Close()
		l.Cleanup()
		return nil, fmt.Errorf("create page: %w", err)
	}
	page = page.Timeout(timeout)

	err = page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             width,
		Height:            height,
		DeviceScaleFactor: 1,
	})
	if err != nil {
		page.Close()
		browser.Close()
		l.Cleanup()
		return nil, fmt.Errorf("set viewport: %w", err)
	}

	return &Session{launcher: l, browser: browser, Page: page}, nil
}

// Navigate loads a URL and waits for the load event plus a short
// request-idle window for late assets.
func (s *Session) Navigate(url string) error {
	if err := s.Page.Navigate(url); err != nil {
		return fmt.Errorf("navigate %s: %w", url, err)
	}
	if err := s.Page.WaitLoad(); err != nil {
		return fmt.Errorf("wait load: %w", err)
	}
	s.Page.WaitRequestIdle(3*time.Second, []string{}, []string{}, nil)
	return nil
}

// Eval runs a JS function on the page, awaiting any returned promise.
func (s *Session) Eval(js string, args ...any) error {
	_, err := s.Page.Eval(js, args...)
	return err
}

// Screenshot captures the visible viewport as PNG bytes.
func (s *Session) Screenshot() ([]byte, error) {
	return s.Page.Screenshot(false, nil)
}

// Close tears the session down in page, browser, launcher order.
func (s *Session) Close() {
	if s.Page != nil {
		s.Page.Close()
	}
	if s.browser != nil {
		s.browser.Close()
	}
	if s.launcher != nil {
		s.launcher.Cleanup()
	}
}
