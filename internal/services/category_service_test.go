package services

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"fiscus/internal/models"
	"fiscus/internal/pagination"
	"fiscus/internal/testutil"
)

func TestCreateCategory(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)

		category, err := svc.CreateCategory("Groceries", models.CategoryTypeExpense, models.PriorityNeeds, "Weekly shopping", "cart", "#00FF00")
		testutil.AssertNoError(t, err)

		if category.ID == "" {
			t.Fatal("expected a generated category ID")
		}
		if category.Priority != models.PriorityNeeds {
			t.Errorf("expected needs priority, got %s", category.Priority)
		}
	})

	t.Run("empty_name", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)

		_, err := svc.CreateCategory("", models.CategoryTypeExpense, models.PriorityNeeds, "", "", "")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("unknown_priority_defaults_to_needs", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)

		category, err := svc.CreateCategory("Misc", models.CategoryTypeExpense, models.Priority("luxuries"), "", "", "")
		testutil.AssertNoError(t, err)

		if category.Priority != models.PriorityNeeds {
			t.Errorf("expected needs fallback, got %s", category.Priority)
		}
	})
}

func TestGetCategories(t *testing.T) {
	t.Run("paginated", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)

		for i := 0; i < 3; i++ {
			testutil.CreateTestCategory(t, db, models.CategoryTypeExpense, models.PriorityNeeds)
		}

		result, err := svc.GetCategories(pagination.PageRequest{Page: 1, PageSize: 2})
		testutil.AssertNoError(t, err)

		if result.TotalItems != 3 {
			t.Errorf("expected 3 total, got %d", result.TotalItems)
		}
		if len(result.Data) != 2 {
			t.Errorf("expected 2 in page, got %d", len(result.Data))
		}
		if result.TotalPages != 2 {
			t.Errorf("expected 2 pages, got %d", result.TotalPages)
		}
	})
}

func TestGetCategoryByID(t *testing.T) {
	t.Run("not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)

		_, err := svc.GetCategoryByID("missing-id")
		testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")
	})
}

func TestUpdateCategory(t *testing.T) {
	t.Run("reassign_priority", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)

		category := testutil.CreateTestCategory(t, db, models.CategoryTypeExpense, models.PriorityNeeds)
		wants := models.PriorityWants

		updated, err := svc.UpdateCategory(category.ID, "", "", "", "", &wants)
		testutil.AssertNoError(t, err)

		if updated.Priority != models.PriorityWants {
			t.Errorf("expected wants priority, got %s", updated.Priority)
		}
	})

	t.Run("invalid_priority_ignored", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)

		category := testutil.CreateTestCategory(t, db, models.CategoryTypeExpense, models.PriorityNeeds)
		bogus := models.Priority("bogus")

		updated, err := svc.UpdateCategory(category.ID, "Renamed", "", "", "", &bogus)
		testutil.AssertNoError(t, err)

		if updated.Priority != models.PriorityNeeds {
			t.Errorf("expected priority unchanged, got %s", updated.Priority)
		}
	})
}

func TestDeleteCategory(t *testing.T) {
	t.Run("unused_category_deleted", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)

		category := testutil.CreateTestCategory(t, db, models.CategoryTypeExpense, models.PriorityNeeds)

		testutil.AssertNoError(t, svc.DeleteCategory(category.ID))

		_, err := svc.GetCategoryByID(category.ID)
		testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")
	})

	t.Run("referenced_category_rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)

		category := testutil.CreateTestCategory(t, db, models.CategoryTypeExpense, models.PriorityNeeds)
		tx := testutil.CreateTestTransaction(t, db, models.TransactionTypeExpense, decimal.NewFromInt(50), time.Now())
		db.Model(tx).Update("category_id", category.ID)

		err := svc.DeleteCategory(category.ID)
		testutil.AssertAppError(t, err, "CATEGORY_IN_USE")
	})
}
