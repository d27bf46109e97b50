package store

import "testing"

func TestMigration(t *testing.T) {
	st, err := OpenMemory()
	if err != nil {
		t.Fatal(err)
	}
	if err := initDB(st.db); err != nil {
		t.Fatal("initializing after opening should be a no-op", err)
	}
}

func TestVersionOrder(t *testing.T) {
	if !(version{0, 1, 0}).Less(version{0, 2, 0}) {
		t.Fatal("0.1.0 should come before 0.2.0")
	}
	if !(version{0, 9, 9}).Less(version{1, 0, 0}) {
		t.Fatal("0.9.9 should come before 1.0.0")
	}
	if (version{1, 0, 0}).Less(version{1, 0, 0}) {
		t.Fatal("Equal versions are not ordered")
	}
}

func TestMigrationsApplied(t *testing.T) {
	st, err := OpenMemory()
	if err != nil {
		t.Fatal(err)
	}
	var count int
	if err := st.db.QueryRow("select count(*) from t_migrations").Scan(&count); err != nil {
		t.Fatal(err)
	}
	files, err := loadMigrations()
	if err != nil {
		t.Fatal(err)
	}
	if count != len(files) {
		t.Fatalf("Expecting %v migrations got %v", len(files), count)
	}
}
