package applet

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/yllada/ip-applet/common"
	"github.com/yllada/ip-applet/config"
)

type fakeLister struct {
	mu    sync.Mutex
	addrs map[string]string
}

func (f *fakeLister) set(addrs map[string]string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.addrs = addrs
}

func (f *fakeLister) Interfaces(ctx context.Context) map[string]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[string]string, len(f.addrs))
	for k, v := range f.addrs {
		out[k] = v
	}
	return out
}

type fakeFetcher struct {
	ip    string
	calls chan string
}

func newFakeFetcher(ip string) *fakeFetcher {
	return &fakeFetcher{ip: ip, calls: make(chan string, 16)}
}

func (f *fakeFetcher) Fetch(ctx context.Context, url string) string {
	f.calls <- url
	return f.ip
}

type fakeStore struct {
	mu    sync.Mutex
	saves int
	last  *config.Preferences
	err   error
}

func (f *fakeStore) Save(prefs *config.Preferences) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saves++
	f.last = prefs.Clone()
	return f.err
}

func (f *fakeStore) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.saves
}

type fakeNotifier struct {
	sent chan string
}

func (f *fakeNotifier) Notify(title, message string) error {
	f.sent <- message
	return nil
}

type observation struct {
	kind    common.ObservationKind
	name    string
	address string
}

type fakeRecorder struct {
	rows []observation
}

func (f *fakeRecorder) Record(kind common.ObservationKind, name, address string) error {
	f.rows = append(f.rows, observation{kind, name, address})
	return nil
}

func emptyPrefs() *config.Preferences {
	prefs := config.DefaultPreferences()
	prefs.EnabledInterfaces = map[string]struct{}{}
	return prefs
}

func waitCall(t *testing.T, calls chan string) string {
	t.Helper()
	select {
	case url := <-calls:
		return url
	case <-time.After(2 * time.Second):
		t.Fatal("expected a fetch")
		return ""
	}
}

func TestNew_InitialState(t *testing.T) {
	a := New(nil, Options{Interfaces: &fakeLister{}, PublicIP: newFakeFetcher("")})
	snap := a.Snapshot()

	if snap.PublicIP != common.PublicIPFetching {
		t.Errorf("PublicIP = %q, want %q", snap.PublicIP, common.PublicIPFetching)
	}
	if len(snap.Rows) != 0 {
		t.Errorf("Rows = %v, want none", snap.Rows)
	}
	if !snap.ShowPublicIP {
		t.Error("default snapshot should show the public IP")
	}
}

func TestApplet_NewInterfaceAutoEnabled(t *testing.T) {
	store := &fakeStore{}
	a := New(emptyPrefs(), Options{Interfaces: &fakeLister{}, PublicIP: newFakeFetcher(""), Store: store})

	a.handle(InterfacesUpdated{Addrs: map[string]string{"eth0": "10.0.0.2"}})

	snap := a.Snapshot()
	if !reflect.DeepEqual(snap.Rows, []Row{{Name: "eth0", Address: "10.0.0.2"}}) {
		t.Errorf("Rows = %v", snap.Rows)
	}
	if !a.prefs.IsEnabled("eth0") {
		t.Error("eth0 should be enabled")
	}
	if store.count() != 1 {
		t.Errorf("auto-enable should persist preferences once, saved %d times", store.count())
	}
}

func TestApplet_ToggleHidesRow(t *testing.T) {
	a := New(emptyPrefs(), Options{Interfaces: &fakeLister{}, PublicIP: newFakeFetcher("")})
	a.handle(InterfacesUpdated{Addrs: map[string]string{"eth0": "10.0.0.2", "wlan0": "192.168.1.20"}})

	a.handle(ToggleInterface{Name: "eth0"})

	snap := a.Snapshot()
	if !reflect.DeepEqual(snap.Rows, []Row{{Name: "wlan0", Address: "192.168.1.20"}}) {
		t.Errorf("Rows = %v", snap.Rows)
	}
	want := []InterfaceState{
		{Name: "eth0", Address: "10.0.0.2", Enabled: false},
		{Name: "wlan0", Address: "192.168.1.20", Enabled: true},
	}
	if !reflect.DeepEqual(snap.Interfaces, want) {
		t.Errorf("Interfaces = %v, want %v", snap.Interfaces, want)
	}
}

func TestApplet_EmptyPollBlanksAddresses(t *testing.T) {
	a := New(emptyPrefs(), Options{Interfaces: &fakeLister{}, PublicIP: newFakeFetcher("")})
	a.handle(InterfacesUpdated{Addrs: map[string]string{"eth0": "10.0.0.2"}})
	a.handle(InterfacesUpdated{Addrs: nil})

	snap := a.Snapshot()
	if len(snap.Rows) != 0 || len(snap.Interfaces) != 0 {
		t.Errorf("an empty poll should replace all addresses, got %v / %v", snap.Rows, snap.Interfaces)
	}
}

func TestApplet_ServiceSwitchFetchesOnce(t *testing.T) {
	fetcher := newFakeFetcher("198.51.100.7")
	store := &fakeStore{}
	a := New(emptyPrefs(), Options{Interfaces: &fakeLister{}, PublicIP: fetcher, Store: store})

	a.handle(SetPublicIPService{Service: config.ServiceIpify4})

	if url := waitCall(t, fetcher.calls); url != "https://api4.ipify.org" {
		t.Errorf("fetched %q, want https://api4.ipify.org", url)
	}

	select {
	case url := <-fetcher.calls:
		t.Errorf("unexpected second fetch of %q", url)
	case <-time.After(100 * time.Millisecond):
	}

	select {
	case ev := <-a.events:
		if got, ok := ev.(PublicIPUpdated); !ok || got.IP != "198.51.100.7" {
			t.Errorf("posted %#v, want PublicIPUpdated", ev)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("fetch result was not posted")
	}

	if store.count() != 1 || store.last.PublicIPService != config.ServiceIpify4 {
		t.Error("service change should be persisted")
	}
}

func TestApplet_InvalidServiceIgnored(t *testing.T) {
	fetcher := newFakeFetcher("")
	a := New(emptyPrefs(), Options{Interfaces: &fakeLister{}, PublicIP: fetcher})

	a.handle(SetPublicIPService{Service: config.PublicIPService(42)})

	if a.prefs.PublicIPService != config.ServiceIfconfig {
		t.Errorf("service = %v, want unchanged", a.prefs.PublicIPService)
	}
	select {
	case url := <-fetcher.calls:
		t.Errorf("unexpected fetch of %q", url)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestApplet_PreferenceEvents(t *testing.T) {
	store := &fakeStore{}
	a := New(emptyPrefs(), Options{Interfaces: &fakeLister{}, PublicIP: newFakeFetcher(""), Store: store})

	a.handle(SetShowPublicIP{Show: false})
	a.handle(SetRefreshInterval{Seconds: 30})
	a.handle(SetTextColor{Color: config.TextCyan})
	a.handle(SetNotify{Enabled: false})

	snap := a.Snapshot()
	if snap.ShowPublicIP {
		t.Error("ShowPublicIP should be false")
	}
	if snap.RefreshIntervalSecs != 30 {
		t.Errorf("RefreshIntervalSecs = %d, want 30", snap.RefreshIntervalSecs)
	}
	if snap.TextColor != config.TextCyan {
		t.Errorf("TextColor = %v, want cyan", snap.TextColor)
	}
	if snap.Notify {
		t.Error("Notify should be false")
	}
	if !snap.Empty() {
		t.Error("snapshot without rows or public IP should be empty")
	}
	if store.count() != 4 {
		t.Errorf("saved %d times, want 4", store.count())
	}
}

func TestApplet_SaveFailureIsNotFatal(t *testing.T) {
	store := &fakeStore{err: errors.New("read-only file system")}
	a := New(emptyPrefs(), Options{Interfaces: &fakeLister{}, PublicIP: newFakeFetcher(""), Store: store})

	a.handle(SetTextColor{Color: config.TextRed})

	if a.Snapshot().TextColor != config.TextRed {
		t.Error("in-memory change should apply even when saving fails")
	}
}

func TestApplet_PublicIPChangeNotifies(t *testing.T) {
	notifier := &fakeNotifier{sent: make(chan string, 4)}
	history := &fakeRecorder{}
	a := New(emptyPrefs(), Options{
		Interfaces: &fakeLister{},
		PublicIP:   newFakeFetcher(""),
		Notifier:   notifier,
		History:    history,
	})

	a.handle(PublicIPUpdated{IP: "203.0.113.5"})
	a.handle(PublicIPUpdated{IP: common.PublicIPUnavailable})
	a.handle(PublicIPUpdated{IP: "203.0.113.5"})

	select {
	case msg := <-notifier.sent:
		t.Errorf("unexpected notification %q", msg)
	case <-time.After(50 * time.Millisecond):
	}

	a.handle(PublicIPUpdated{IP: "198.51.100.7"})

	select {
	case msg := <-notifier.sent:
		if msg != "203.0.113.5 → 198.51.100.7" {
			t.Errorf("notification = %q", msg)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("expected a notification")
	}

	want := []observation{
		{common.ObservationPublic, "ifconfig", "203.0.113.5"},
		{common.ObservationPublic, "ifconfig", "198.51.100.7"},
	}
	if !reflect.DeepEqual(history.rows, want) {
		t.Errorf("history = %v, want %v", history.rows, want)
	}
	if a.Snapshot().PublicIP != "198.51.100.7" {
		t.Errorf("PublicIP = %q", a.Snapshot().PublicIP)
	}
}

func TestApplet_InterfaceHistory(t *testing.T) {
	history := &fakeRecorder{}
	a := New(emptyPrefs(), Options{Interfaces: &fakeLister{}, PublicIP: newFakeFetcher(""), History: history})

	a.handle(InterfacesUpdated{Addrs: map[string]string{"eth0": "10.0.0.2", "wlan0": "192.168.1.20"}})
	a.handle(InterfacesUpdated{Addrs: map[string]string{"eth0": "10.0.0.2", "wlan0": "192.168.1.21"}})

	want := []observation{
		{common.ObservationInterface, "eth0", "10.0.0.2"},
		{common.ObservationInterface, "wlan0", "192.168.1.20"},
		{common.ObservationInterface, "wlan0", "192.168.1.21"},
	}
	if !reflect.DeepEqual(history.rows, want) {
		t.Errorf("history = %v, want %v", history.rows, want)
	}
}

func TestApplet_RunPublishesPollResults(t *testing.T) {
	lister := &fakeLister{}
	lister.set(map[string]string{"eth0": "10.0.0.2"})
	fetcher := newFakeFetcher(" 203.0.113.5 ")
	a := New(emptyPrefs(), Options{Interfaces: lister, PublicIP: fetcher})

	snaps := make(chan Snapshot, 64)
	a.Subscribe(func(s Snapshot) {
		select {
		case snaps <- s:
		default:
		}
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Run(ctx) }()

	deadline := time.After(2 * time.Second)
	for {
		var snap Snapshot
		select {
		case snap = <-snaps:
		case <-deadline:
			t.Fatal("did not observe both poll results")
		}
		if len(snap.Rows) == 1 && snap.PublicIP == " 203.0.113.5 " {
			break
		}
	}

	a.Post(ToggleInterface{Name: "eth0"})
	deadline = time.After(2 * time.Second)
	for {
		var snap Snapshot
		select {
		case snap = <-snaps:
		case <-deadline:
			t.Fatal("toggle was not applied")
		}
		if len(snap.Rows) == 0 {
			break
		}
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run() error = %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run() did not stop")
	}

	// Posting after shutdown must not block.
	a.Post(Tick{})
}

func TestApplet_RefreshOnce(t *testing.T) {
	lister := &fakeLister{}
	lister.set(map[string]string{"wlan0": "192.168.1.20", "eth0": "10.0.0.2"})
	fetcher := newFakeFetcher("203.0.113.5")
	a := New(emptyPrefs(), Options{Interfaces: lister, PublicIP: fetcher})

	snap := a.RefreshOnce(context.Background())

	wantRows := []Row{{"eth0", "10.0.0.2"}, {"wlan0", "192.168.1.20"}}
	if !reflect.DeepEqual(snap.Rows, wantRows) {
		t.Errorf("Rows = %v, want %v", snap.Rows, wantRows)
	}
	lines := snap.Lines()
	if len(lines) != 3 || lines[2] != (Row{Name: common.PublicIPLabel, Address: "203.0.113.5"}) {
		t.Errorf("Lines() = %v", lines)
	}
	if url := waitCall(t, fetcher.calls); url != "https://ifconfig.io/ip" {
		t.Errorf("fetched %q", url)
	}
}

func TestApplet_UnreadableConfigKeptAfterPoll(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	original := []byte("enabled_interfaces: [eth1]\n" +
		"public_ip_service: ipify\n" +
		"refresh_rate_secs: 60\n" +
		"text_color: red\n" +
		"theme: dark\n")
	if err := os.WriteFile(path, original, 0600); err != nil {
		t.Fatal(err)
	}

	store := config.NewStore(path)
	prefs, err := store.Load()
	if !errors.Is(err, common.ErrConfigLoad) {
		t.Fatalf("Load() error = %v, want ErrConfigLoad", err)
	}
	if prefs == nil {
		prefs = config.DefaultPreferences()
	}

	a := New(prefs, Options{Interfaces: &fakeLister{}, PublicIP: newFakeFetcher(""), Store: store})
	a.handle(InterfacesUpdated{Addrs: map[string]string{"eth0": "10.0.0.5"}})
	a.handle(SetTextColor{Color: config.TextGreen})

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != string(original) {
		t.Errorf("config file was overwritten:\n%s", data)
	}
	if rows := a.Snapshot().Rows; len(rows) != 1 || rows[0].Name != "eth0" {
		t.Errorf("Rows = %v, want eth0", rows)
	}
}

func TestApplet_HiddenInterfaceReenabledAtStartup(t *testing.T) {
	store := &fakeStore{}
	prefs := emptyPrefs()
	prefs.Enable("wlan0")

	a := New(prefs, Options{Interfaces: &fakeLister{}, PublicIP: newFakeFetcher(""), Store: store})
	a.handle(InterfacesUpdated{Addrs: map[string]string{"eth0": "10.0.0.5", "wlan0": "192.168.1.2"}})

	if !store.last.IsEnabled("eth0") {
		t.Error("an interface that is up at startup is enabled and saved, even if it was hidden before")
	}

	// Hiding it again sticks for as long as it stays known.
	a.handle(ToggleInterface{Name: "eth0"})
	a.handle(InterfacesUpdated{Addrs: map[string]string{"eth0": "10.0.0.5", "wlan0": "192.168.1.2"}})
	if store.last.IsEnabled("eth0") {
		t.Error("eth0 should stay hidden while it is known")
	}
}

func TestApplet_SubscribeDeliversCurrentSnapshot(t *testing.T) {
	a := New(emptyPrefs(), Options{Interfaces: &fakeLister{}, PublicIP: newFakeFetcher("")})
	a.handle(InterfacesUpdated{Addrs: map[string]string{"eth0": "10.0.0.5"}})

	var got []Snapshot
	a.Subscribe(func(s Snapshot) { got = append(got, s) })
	if len(got) != 1 || len(got[0].Rows) != 1 {
		t.Fatalf("Subscribe should deliver the current snapshot at once, got %v", got)
	}

	a.handle(SetTextColor{Color: config.TextCyan})
	if len(got) != 2 || got[1].TextColor != config.TextCyan {
		t.Errorf("second delivery = %v, want the cyan snapshot", got)
	}
}

func TestApplet_SubscriberCallsDoNotOverlap(t *testing.T) {
	a := New(emptyPrefs(), Options{Interfaces: &fakeLister{}, PublicIP: newFakeFetcher("")})

	var (
		mu      sync.Mutex
		active  int
		overlap bool
	)
	fn := func(Snapshot) {
		mu.Lock()
		active++
		if active > 1 {
			overlap = true
		}
		mu.Unlock()
		time.Sleep(time.Millisecond)
		mu.Lock()
		active--
		mu.Unlock()
	}

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			a.Subscribe(fn)
		}()
	}
	for i := 0; i < 4; i++ {
		a.handle(SetNotify{Enabled: i%2 == 0})
	}
	wg.Wait()

	if overlap {
		t.Error("subscriber calls overlapped")
	}
}

func TestSnapshot_SettingsIgnoresAddresses(t *testing.T) {
	a := New(emptyPrefs(), Options{Interfaces: &fakeLister{}, PublicIP: newFakeFetcher("")})
	a.handle(InterfacesUpdated{Addrs: map[string]string{"eth0": "10.0.0.5"}})
	a.handle(PublicIPUpdated{IP: "203.0.113.7"})
	before := a.Snapshot().Settings()

	a.handle(InterfacesUpdated{Addrs: map[string]string{"eth0": "10.0.0.9"}})
	a.handle(PublicIPUpdated{IP: "203.0.113.8"})
	if after := a.Snapshot().Settings(); !reflect.DeepEqual(before, after) {
		t.Errorf("address changes altered the settings view:\n%+v\n%+v", before, after)
	}

	a.handle(ToggleInterface{Name: "eth0"})
	want := []InterfaceToggle{{Name: "eth0", Enabled: false}}
	if got := a.Snapshot().Settings().Interfaces; !reflect.DeepEqual(got, want) {
		t.Errorf("Settings().Interfaces = %v, want %v", got, want)
	}
}
