package engine

import (
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"rival-server/internal/content"
	"rival-server/internal/domain"
	"rival-server/internal/infrastructure/storage"
	"rival-server/pkg/api"
	"rival-server/pkg/stage"
)

func newTestService(t *testing.T) *GameService {
	t.Helper()

	catalog, err := content.NewCatalog()
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	library, err := stage.LoadLibrary()
	if err != nil {
		t.Fatalf("library: %v", err)
	}

	// Без хранилища и с сидом: прогоны детерминированы
	svc, err := NewService(Config{CombatSeed: 7, AutosaveSec: 3600}, catalog, library, nil)
	if err != nil {
		t.Fatalf("service: %v", err)
	}
	svc.Start()
	t.Cleanup(svc.Stop)
	return svc
}

func recvResponse(t *testing.T, ch chan api.ServerResponse) api.ServerResponse {
	t.Helper()
	select {
	case resp := <-ch:
		return resp
	case <-time.After(2 * time.Second):
		t.Fatal("no response from service loop")
		return api.ServerResponse{}
	}
}

func mustPayload(t *testing.T, v interface{}) json.RawMessage {
	t.Helper()
	raw, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	return raw
}

func TestServiceAttachAndInitSnapshot(t *testing.T) {
	svc := newTestService(t)

	id, err := svc.Attach("rin", "session_test", "")
	if err != nil {
		t.Fatalf("attach: %v", err)
	}
	if id == 0 {
		t.Fatal("attach must return a real entity id")
	}

	ch := svc.Hub.Register(id)
	defer svc.Hub.Unregister(id)

	svc.ProcessCommand(id, api.ClientCommand{Action: "INIT"})
	resp := recvResponse(t, ch)

	if resp.Type != "UPDATE" {
		t.Fatalf("expected UPDATE, got %s (%s)", resp.Type, resp.Error)
	}
	if resp.MyEntityID != id.Token() {
		t.Errorf("snapshot must carry the wire form of my id: %s vs %s", resp.MyEntityID, id.Token())
	}
	if resp.StageID != stage.DefaultStageID {
		t.Errorf("fresh session starts on the default stage, got %s", resp.StageID)
	}

	enemies := 0
	for _, ev := range resp.Entities {
		if ev.Kind == "enemy" {
			enemies++
		}
	}
	if enemies != 4 {
		t.Errorf("rooftops arena spawns 4 grunts, snapshot has %d", enemies)
	}
}

func TestServiceContactsFrameResolvesKill(t *testing.T) {
	svc := newTestService(t)

	id, err := svc.Attach("rin", "session_test", "")
	if err != nil {
		t.Fatalf("attach: %v", err)
	}
	ch := svc.Hub.Register(id)
	defer svc.Hub.Unregister(id)

	svc.ProcessCommand(id, api.ClientCommand{Action: "INIT"})
	snap := recvResponse(t, ch)

	var enemyToken string
	for _, ev := range snap.Entities {
		if ev.Kind == "enemy" {
			enemyToken = ev.ID
			break
		}
	}
	if enemyToken == "" {
		t.Fatal("no enemy in the initial snapshot")
	}

	svc.ProcessCommand(id, api.ClientCommand{
		Action: "CONTACTS",
		Payload: mustPayload(t, api.ContactsPayload{
			DeltaTime: 0.016,
			Contacts:  []api.ContactView{{A: id.Token(), B: enemyToken}},
		}),
	})
	resp := recvResponse(t, ch)

	if resp.Type != "UPDATE" {
		t.Fatalf("expected UPDATE, got %s (%s)", resp.Type, resp.Error)
	}
	if resp.Frame != 1 {
		t.Errorf("first CONTACTS packet advances the frame counter to 1, got %d", resp.Frame)
	}

	// Игрок ваншотит грунта: базовая атака 13+ против 8 HP
	for _, ev := range resp.Entities {
		if ev.ID == enemyToken {
			t.Error("killed grunt must be gone from the snapshot")
		}
	}
	if resp.Score != domain.ScorePerEnemyKill {
		t.Errorf("kill must score %d, got %d", domain.ScorePerEnemyKill, resp.Score)
	}

	scoreEvents := 0
	for _, e := range resp.Events {
		if e.Type == "SCORE_UPDATE" {
			scoreEvents++
		}
	}
	if scoreEvents != 1 {
		t.Errorf("expected one score event in the frame batch, got %d", scoreEvents)
	}
}

func TestServiceRejectsMalformedContacts(t *testing.T) {
	svc := newTestService(t)

	id, err := svc.Attach("rin", "session_test", "")
	if err != nil {
		t.Fatalf("attach: %v", err)
	}
	ch := svc.Hub.Register(id)
	defer svc.Hub.Unregister(id)

	svc.ProcessCommand(id, api.ClientCommand{
		Action: "CONTACTS",
		Payload: mustPayload(t, api.ContactsPayload{
			DeltaTime: -1, // отрицательная дельта не проходит валидацию
		}),
	})
	resp := recvResponse(t, ch)

	if resp.Type != "ERROR" {
		t.Fatalf("negative delta must be rejected, got %s", resp.Type)
	}
}

func TestServiceStopFlushesProfilesBeforeReturn(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profiles.db")
	store, err := storage.Open(path)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}

	catalog, err := content.NewCatalog()
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	library, err := stage.LoadLibrary()
	if err != nil {
		t.Fatalf("library: %v", err)
	}
	svc, err := NewService(Config{CombatSeed: 7, AutosaveSec: 3600}, catalog, library, store)
	if err != nil {
		t.Fatalf("service: %v", err)
	}
	svc.Start()

	if _, err := svc.Attach("rin", "session_test", ""); err != nil {
		t.Fatalf("attach: %v", err)
	}

	// Порядок как в main: Stop, затем закрытие хранилища.
	// Stop обязан вернуться только после финального сброса профилей.
	svc.Stop()
	if err := store.Close(); err != nil {
		t.Fatalf("close store: %v", err)
	}

	reopened, err := storage.Open(path)
	if err != nil {
		t.Fatalf("reopen store: %v", err)
	}
	defer reopened.Close()

	profile, err := reopened.Get("rin")
	if err != nil {
		t.Fatalf("profile must survive shutdown: %v", err)
	}
	if profile.Level.Current != 1 {
		t.Errorf("expected level 1 in the flushed profile, got %d", profile.Level.Current)
	}
	if profile.StageID != stage.DefaultStageID {
		t.Errorf("flushed profile must carry the stage, got %s", profile.StageID)
	}
}

func TestServiceDetachRemovesPlayer(t *testing.T) {
	svc := newTestService(t)

	id, err := svc.Attach("rin", "session_test", "")
	if err != nil {
		t.Fatalf("attach: %v", err)
	}
	ch := svc.Hub.Register(id)

	svc.Detach(id)

	// Detach асинхронный: ждем, пока цикл закроет канал подписки
	select {
	case _, ok := <-ch:
		if ok {
			t.Fatal("expected subscription channel to close on detach")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("detach did not close the subscription")
	}
}
