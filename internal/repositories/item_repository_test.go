package repositories

import (
	"testing"
	"time"

	"github.com/campusfind/backend/internal/models"
	"github.com/campusfind/backend/internal/realtime"
)

func seedUser(t *testing.T, repo *PostgresUserRepository, name, email string) *models.User {
	t.Helper()
	user := &models.User{Name: name, Email: email, Role: models.RoleUser}
	if err := repo.CreateUser(user); err != nil {
		t.Fatalf("seeding user %s: %v", name, err)
	}
	return user
}

func TestFindFoundCandidates(t *testing.T) {
	db := NewTestDB(t)
	feed := realtime.NewFeed()
	users := NewPostgresUserRepository(db)
	items := NewPostgresItemRepository(db, feed)

	me := seedUser(t, users, "Me", "me@campus.edu")
	other := seedUser(t, users, "Other", "other@campus.edu")

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	seed := []models.Item{
		// Matched by category.
		{Title: "Found Earbuds", Category: models.CategoryElectronics, Status: models.ItemStatusFound,
			Location: "Canteen", ReportedByID: other.ID, CreatedAt: base},
		// Matched by location substring, case-insensitive, different category.
		{Title: "Found Wallet", Category: models.CategoryAccessories, Status: models.ItemStatusFound,
			Location: "Central LIBRARY Annex", ReportedByID: other.ID, CreatedAt: base.Add(time.Hour)},
		// Excluded: reported by the requesting user.
		{Title: "My Own Found", Category: models.CategoryElectronics, Status: models.ItemStatusFound,
			Location: "Library", ReportedByID: me.ID, CreatedAt: base.Add(2 * time.Hour)},
		// Excluded: not found status.
		{Title: "Lost Phone", Category: models.CategoryElectronics, Status: models.ItemStatusLost,
			Location: "Library", ReportedByID: other.ID, CreatedAt: base.Add(3 * time.Hour)},
		// Excluded: no category or location overlap.
		{Title: "Found Scarf", Category: models.CategoryClothing, Status: models.ItemStatusFound,
			Location: "Gym", ReportedByID: other.ID, CreatedAt: base.Add(4 * time.Hour)},
	}
	for i := range seed {
		if err := items.CreateItem(&seed[i]); err != nil {
			t.Fatalf("seeding item %q: %v", seed[i].Title, err)
		}
	}

	candidates, err := items.FindFoundCandidates(me.ID, models.CategoryElectronics, "library")
	if err != nil {
		t.Fatalf("FindFoundCandidates: %v", err)
	}
	if len(candidates) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(candidates))
	}
	// Newest first.
	if candidates[0].Title != "Found Wallet" || candidates[1].Title != "Found Earbuds" {
		t.Errorf("expected [Found Wallet, Found Earbuds], got [%s, %s]",
			candidates[0].Title, candidates[1].Title)
	}
	if candidates[0].ReportedBy == nil || candidates[0].ReportedBy.Name != "Other" {
		t.Errorf("expected reporter preloaded on candidates")
	}
}

func TestCreateItemPublishesInsertEvent(t *testing.T) {
	db := NewTestDB(t)
	feed := realtime.NewFeed()
	users := NewPostgresUserRepository(db)
	items := NewPostgresItemRepository(db, feed)

	reporter := seedUser(t, users, "Reporter", "reporter@campus.edu")
	sub := feed.Subscribe(realtime.TableItems, nil)
	defer sub.Close()

	item := &models.Item{
		Title:        "Found Umbrella",
		Category:     models.CategoryOther,
		Status:       models.ItemStatusFound,
		Location:     "Main Gate",
		ReportedByID: reporter.ID,
	}
	if err := items.CreateItem(item); err != nil {
		t.Fatalf("CreateItem: %v", err)
	}

	ev := <-sub.C
	if ev.Op != realtime.OpInsert {
		t.Errorf("expected insert event, got %v", ev.Op)
	}
	inserted, ok := ev.New.(*models.Item)
	if !ok {
		t.Fatalf("expected *models.Item payload, got %T", ev.New)
	}
	if inserted.ID != item.ID || inserted.Title != "Found Umbrella" {
		t.Errorf("event payload mismatch: %+v", inserted)
	}
}

func TestUpdateItemPublishesOldRow(t *testing.T) {
	db := NewTestDB(t)
	feed := realtime.NewFeed()
	users := NewPostgresUserRepository(db)
	items := NewPostgresItemRepository(db, feed)

	reporter := seedUser(t, users, "Reporter", "reporter@campus.edu")
	item := &models.Item{
		Title:        "Lost Keys",
		Category:     models.CategoryOther,
		Status:       models.ItemStatusLost,
		Location:     "Lab 2",
		ReportedByID: reporter.ID,
	}
	if err := items.CreateItem(item); err != nil {
		t.Fatalf("CreateItem: %v", err)
	}

	sub := feed.Subscribe(realtime.TableItems, nil)
	defer sub.Close()

	item.Status = models.ItemStatusClaimed
	if err := items.UpdateItem(item); err != nil {
		t.Fatalf("UpdateItem: %v", err)
	}

	ev := <-sub.C
	if ev.Op != realtime.OpUpdate {
		t.Fatalf("expected update event, got %v", ev.Op)
	}
	oldItem := ev.Old.(*models.Item)
	newItem := ev.New.(*models.Item)
	if oldItem.Status != models.ItemStatusLost {
		t.Errorf("expected old status lost, got %q", oldItem.Status)
	}
	if newItem.Status != models.ItemStatusClaimed {
		t.Errorf("expected new status claimed, got %q", newItem.Status)
	}
}

func TestGetItemsFilters(t *testing.T) {
	db := NewTestDB(t)
	feed := realtime.NewFeed()
	users := NewPostgresUserRepository(db)
	items := NewPostgresItemRepository(db, feed)

	reporter := seedUser(t, users, "Reporter", "reporter@campus.edu")
	seed := []models.Item{
		{Title: "Found Calculator", Category: models.CategoryElectronics, Status: models.ItemStatusFound,
			Location: "Exam Hall", ReportedByID: reporter.ID},
		{Title: "Lost Calculator", Category: models.CategoryElectronics, Status: models.ItemStatusLost,
			Location: "Library", ReportedByID: reporter.ID},
		{Title: "Lost Notebook", Category: models.CategoryStationery, Status: models.ItemStatusLost,
			Location: "Library", ReportedByID: reporter.ID},
	}
	for i := range seed {
		if err := items.CreateItem(&seed[i]); err != nil {
			t.Fatalf("seeding item: %v", err)
		}
	}

	lost, err := items.GetItems(models.ItemFilter{Status: models.ItemStatusLost})
	if err != nil {
		t.Fatalf("GetItems by status: %v", err)
	}
	if len(lost) != 2 {
		t.Errorf("expected 2 lost items, got %d", len(lost))
	}

	electronics, err := items.GetItems(models.ItemFilter{Category: models.CategoryElectronics, Location: "library"})
	if err != nil {
		t.Fatalf("GetItems by category and location: %v", err)
	}
	if len(electronics) != 1 || electronics[0].Title != "Lost Calculator" {
		t.Errorf("expected only the library calculator, got %v", electronics)
	}

	byText, err := items.GetItems(models.ItemFilter{Query: "notebook"})
	if err != nil {
		t.Fatalf("GetItems by text: %v", err)
	}
	if len(byText) != 1 || byText[0].Title != "Lost Notebook" {
		t.Errorf("expected the notebook, got %v", byText)
	}
}

func TestGetByReporterAndStatus(t *testing.T) {
	db := NewTestDB(t)
	feed := realtime.NewFeed()
	users := NewPostgresUserRepository(db)
	items := NewPostgresItemRepository(db, feed)

	me := seedUser(t, users, "Me", "me@campus.edu")
	other := seedUser(t, users, "Other", "other@campus.edu")

	seed := []models.Item{
		{Title: "Mine Lost", Status: models.ItemStatusLost, Category: models.CategoryBooks,
			Location: "Library", ReportedByID: me.ID},
		{Title: "Mine Found", Status: models.ItemStatusFound, Category: models.CategoryBooks,
			Location: "Library", ReportedByID: me.ID},
		{Title: "Theirs Lost", Status: models.ItemStatusLost, Category: models.CategoryBooks,
			Location: "Library", ReportedByID: other.ID},
	}
	for i := range seed {
		if err := items.CreateItem(&seed[i]); err != nil {
			t.Fatalf("seeding item: %v", err)
		}
	}

	mine, err := items.GetByReporterAndStatus(me.ID, models.ItemStatusLost)
	if err != nil {
		t.Fatalf("GetByReporterAndStatus: %v", err)
	}
	if len(mine) != 1 || mine[0].Title != "Mine Lost" {
		t.Errorf("expected only my lost item, got %v", mine)
	}
}
