// Package applet owns the applet state and its event loop.
//
// All state lives in Applet and is touched only by the goroutine running
// Run. Pollers run in their own goroutines and post their results back as
// events, and views send user intents with Post and observe state through
// Subscribe.
package applet

import (
	"context"
	"sync"
	"time"

	"github.com/yllada/ip-applet/common"
	"github.com/yllada/ip-applet/config"
	"github.com/yllada/ip-applet/netinfo"
)

const publicIPRowName = common.PublicIPLabel

// PreferenceSaver persists the preference set after each change.
type PreferenceSaver interface {
	Save(prefs *config.Preferences) error
}

// Options wires the applet to its collaborators.
// Interfaces and PublicIP are required; the rest may be nil.
type Options struct {
	Interfaces common.InterfaceLister
	PublicIP   common.PublicIPFetcher
	Store      PreferenceSaver
	Notifier   common.Notifier
	History    common.Recorder
}

// Applet holds preferences and derived address state.
type Applet struct {
	opts    Options
	events  chan Event
	stopped chan struct{}
	ctx     context.Context
	ticker  *time.Ticker

	// Loop-owned state.
	prefs      *config.Preferences
	known      []string
	addrs      map[string]string
	publicIP   string
	lastPublic string

	mu          sync.RWMutex
	snapshot    Snapshot
	subscribers []func(Snapshot)

	// deliverMu serializes subscriber calls.
	deliverMu sync.Mutex
}

// New creates an applet for prefs. The applet takes ownership of prefs.
func New(prefs *config.Preferences, opts Options) *Applet {
	if prefs == nil {
		prefs = config.DefaultPreferences()
	}
	a := &Applet{
		opts:     opts,
		events:   make(chan Event, common.EventQueueSize),
		stopped:  make(chan struct{}),
		ctx:      context.Background(),
		prefs:    prefs,
		addrs:    make(map[string]string),
		publicIP: common.PublicIPFetching,
	}
	a.snapshot = a.buildSnapshot()
	return a
}

// Subscribe registers fn to receive a snapshot after every processed event.
// fn is called once with the current snapshot on the caller's goroutine,
// then on the loop goroutine. Calls never overlap and arrive in publish
// order. fn must not block or post events; views hand the snapshot to their
// own thread.
func (a *Applet) Subscribe(fn func(Snapshot)) {
	a.deliverMu.Lock()
	defer a.deliverMu.Unlock()

	a.mu.Lock()
	a.subscribers = append(a.subscribers, fn)
	snap := a.snapshot
	a.mu.Unlock()
	fn(snap)
}

// Snapshot returns the most recently published state.
func (a *Applet) Snapshot() Snapshot {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.snapshot
}

// Post queues an event for the loop. It is safe to call from any goroutine
// and returns without effect once Run has exited.
func (a *Applet) Post(ev Event) {
	select {
	case a.events <- ev:
	case <-a.stopped:
	}
}

// Run polls immediately, then on every refresh tick, and processes events
// until ctx is done. Outstanding fetches are cancelled with ctx.
func (a *Applet) Run(ctx context.Context) error {
	defer close(a.stopped)

	a.ctx = ctx
	a.ticker = time.NewTicker(a.prefs.RefreshInterval())
	defer a.ticker.Stop()

	common.LogInfo("Applet started (refresh: %v, service: %s)", a.prefs.RefreshInterval(), a.prefs.PublicIPService.Label())

	a.pollAll()
	a.publish()

	for {
		select {
		case <-ctx.Done():
			common.LogInfo("Applet stopped")
			return nil
		case <-a.ticker.C:
			a.handle(Tick{})
		case ev := <-a.events:
			a.handle(ev)
		}
	}
}

// RefreshOnce polls both sources synchronously and returns the resulting
// state. It must not be used while Run is active.
func (a *Applet) RefreshOnce(ctx context.Context) Snapshot {
	a.ctx = ctx

	var (
		wg    sync.WaitGroup
		addrs map[string]string
		ip    string
	)
	wg.Add(1)
	go func() {
		defer wg.Done()
		addrs = a.opts.Interfaces.Interfaces(ctx)
	}()
	if a.prefs.ShowPublicIP {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ip = a.opts.PublicIP.Fetch(ctx, a.prefs.PublicIPService.URL())
		}()
	}
	wg.Wait()

	a.applyInterfaces(addrs)
	if a.prefs.ShowPublicIP {
		a.applyPublicIP(ip)
	}
	a.publish()
	return a.Snapshot()
}

// handle applies one event to the state and publishes the result.
func (a *Applet) handle(ev Event) {
	switch e := ev.(type) {
	case Tick:
		a.pollAll()
	case InterfacesUpdated:
		a.applyInterfaces(e.Addrs)
	case PublicIPUpdated:
		a.applyPublicIP(e.IP)
	case ToggleInterface:
		a.prefs.ToggleInterface(e.Name)
		a.save()
	case SetShowPublicIP:
		a.prefs.SetShowPublicIP(e.Show)
		a.save()
	case SetPublicIPService:
		if !e.Service.Valid() {
			common.LogWarn("Ignoring %v: %d", common.ErrInvalidService, int(e.Service))
			return
		}
		a.prefs.SetPublicIPService(e.Service)
		a.save()
		a.fetchPublicIP()
	case SetRefreshInterval:
		a.prefs.SetRefreshInterval(e.Seconds)
		a.save()
		if a.ticker != nil {
			a.ticker.Reset(a.prefs.RefreshInterval())
		}
	case SetTextColor:
		a.prefs.SetTextColor(e.Color)
		a.save()
	case SetNotify:
		a.prefs.SetNotify(e.Enabled)
		a.save()
	default:
		common.LogWarn("Unhandled applet event %T", ev)
		return
	}
	a.publish()
}

// pollAll starts both pollers.
func (a *Applet) pollAll() {
	a.fetchInterfaces()
	a.fetchPublicIP()
}

func (a *Applet) fetchInterfaces() {
	ctx, lister := a.ctx, a.opts.Interfaces
	go func() {
		addrs := lister.Interfaces(ctx)
		a.deliver(ctx, InterfacesUpdated{Addrs: addrs})
	}()
}

// fetchPublicIP starts a fetch against the configured service. Earlier
// fetches are left running; whichever completes last wins.
func (a *Applet) fetchPublicIP() {
	ctx, fetcher, url := a.ctx, a.opts.PublicIP, a.prefs.PublicIPService.URL()
	go func() {
		ip := fetcher.Fetch(ctx, url)
		a.deliver(ctx, PublicIPUpdated{IP: ip})
	}()
}

func (a *Applet) deliver(ctx context.Context, ev Event) {
	select {
	case a.events <- ev:
	case <-ctx.Done():
	case <-a.stopped:
	}
}

// applyInterfaces reconciles an enumeration result into the state.
// The address map is replaced in full, even when the result is empty.
func (a *Applet) applyInterfaces(addrs map[string]string) {
	if addrs == nil {
		addrs = make(map[string]string)
	}

	next, added := netinfo.Reconcile(a.known, addrs, a.prefs)
	for _, name := range added {
		common.LogInfo("New interface %s (%s) enabled", name, addrs[name])
	}

	for _, name := range common.SortedKeys(addrs) {
		if old, ok := a.addrs[name]; !ok || old != addrs[name] {
			a.record(common.ObservationInterface, name, addrs[name])
		}
	}

	a.known = next
	a.addrs = addrs

	if len(added) > 0 {
		a.save()
	}
}

// applyPublicIP stores a fetch result and reports real address changes.
func (a *Applet) applyPublicIP(ip string) {
	a.publicIP = ip

	if ip == common.PublicIPUnavailable || ip == common.PublicIPFetching || ip == "" {
		return
	}
	if ip == a.lastPublic {
		return
	}

	previous := a.lastPublic
	a.lastPublic = ip
	a.record(common.ObservationPublic, a.prefs.PublicIPService.ID(), ip)

	if previous == "" {
		common.LogInfo("Public IP is %s", ip)
		return
	}
	common.LogInfo("Public IP changed from %s to %s", previous, ip)
	if a.prefs.Notify && a.opts.Notifier != nil {
		notifier := a.opts.Notifier
		go func() {
			if err := notifier.Notify("Public IP changed", previous+" → "+ip); err != nil {
				common.LogWarn("Notification failed: %v", err)
			}
		}()
	}
}

func (a *Applet) record(kind common.ObservationKind, name, address string) {
	if a.opts.History == nil {
		return
	}
	if err := a.opts.History.Record(kind, name, address); err != nil {
		common.LogWarn("Recording %s %s failed: %v", kind, name, err)
	}
}

func (a *Applet) save() {
	if a.opts.Store == nil {
		return
	}
	if err := a.opts.Store.Save(a.prefs); err != nil {
		common.LogError("Saving preferences failed: %v", err)
	}
}

// publish stores a fresh snapshot and hands it to subscribers.
func (a *Applet) publish() {
	snap := a.buildSnapshot()

	a.deliverMu.Lock()
	defer a.deliverMu.Unlock()

	a.mu.Lock()
	a.snapshot = snap
	subscribers := make([]func(Snapshot), len(a.subscribers))
	copy(subscribers, a.subscribers)
	a.mu.Unlock()

	for _, fn := range subscribers {
		fn(snap)
	}
}
