package database

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"risk-assessment/internal/models"
	"risk-assessment/internal/risk"
)

// LoadSite reads every element and risk of a project and rebuilds its tree.
func LoadSite(ctx context.Context, db *gorm.DB, project models.Project) (risk.Site, error) {
	var elements []models.Element
	if err := db.WithContext(ctx).
		Where("project_id = ?", project.ID).
		Order("created_at asc, id asc").
		Find(&elements).Error; err != nil {
		return risk.Site{}, fmt.Errorf("load elements: %w", err)
	}

	var risks []models.Risk
	if len(elements) > 0 {
		ids := make([]string, 0, len(elements))
		for _, e := range elements {
			ids = append(ids, e.ID)
		}
		if err := db.WithContext(ctx).
			Where("element_id IN ?", ids).
			Order("created_at asc, id asc").
			Find(&risks).Error; err != nil {
			return risk.Site{}, fmt.Errorf("load risks: %w", err)
		}
	}

	rootZones, err := BuildTree(elements, risks)
	if err != nil {
		return risk.Site{}, err
	}
	return risk.Site{
		ID:         project.ID,
		Name:       project.Name,
		Address:    project.Address,
		ClientName: project.ClientName,
		RootZones:  rootZones,
	}, nil
}

// BuildTree links flat element rows into root zones, keeping input order
// among siblings. Assets without a zone parent are dropped. A parent chain
// that loops is reported as a structural error.
func BuildTree(elements []models.Element, risks []models.Risk) ([]risk.Zone, error) {
	byID := make(map[string]models.Element, len(elements))
	for _, e := range elements {
		byID[e.ID] = e
	}
	if err := checkParentChains(elements, byID); err != nil {
		return nil, err
	}

	factors := make(map[string][]risk.RiskFactor)
	for _, r := range risks {
		factors[r.ElementID] = append(factors[r.ElementID], r.Factor())
	}

	zones := make(map[string]*risk.Zone)
	for _, e := range elements {
		if e.Type == risk.KindZone {
			zones[e.ID] = &risk.Zone{ID: e.ID, Name: e.Name}
		}
	}

	for _, e := range elements {
		if e.ParentID == nil {
			continue
		}
		parent, ok := zones[*e.ParentID]
		if !ok {
			continue
		}
		switch e.Type {
		case risk.KindZone:
			parent.SubZones = append(parent.SubZones, zones[e.ID])
		case risk.KindAsset:
			parent.Assets = append(parent.Assets, risk.Asset{
				ID:    e.ID,
				Name:  e.Name,
				Type:  assetType(e.AssetType),
				Risks: factors[e.ID],
			})
		}
	}

	// roots are copied last so they carry every linked child
	var roots []risk.Zone
	for _, e := range elements {
		if e.ParentID == nil && e.Type == risk.KindZone {
			roots = append(roots, *zones[e.ID])
		}
	}
	return roots, nil
}

func checkParentChains(elements []models.Element, byID map[string]models.Element) error {
	for _, e := range elements {
		seen := map[string]bool{e.ID: true}
		path := []string{e.Name}
		cur := e
		for cur.ParentID != nil {
			parent, ok := byID[*cur.ParentID]
			if !ok {
				break
			}
			path = append(path, parent.Name)
			if seen[parent.ID] {
				reverse(path)
				return &risk.StructureError{NodeID: parent.ID, NodeName: parent.Name, Path: path}
			}
			seen[parent.ID] = true
			cur = parent
		}
	}
	return nil
}

func reverse(s []string) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}

func assetType(t string) string {
	if strings.TrimSpace(t) == "" {
		return risk.GenericCategory
	}
	return t
}

func GetElement(ctx context.Context, db *gorm.DB, id string) (models.Element, error) {
	var e models.Element
	err := db.WithContext(ctx).Where("id = ?", id).First(&e).Error
	return e, notFound(err)
}

// AddElement creates a zone or asset. Without a parent the element must be a
// zone; with a parent, the parent must be a zone of the same project.
func AddElement(ctx context.Context, db *gorm.DB, e *models.Element) error {
	e.Name = strings.TrimSpace(e.Name)

	if e.ParentID == nil || *e.ParentID == "" {
		e.ParentID = nil
		if e.Type != risk.KindZone {
			return fmt.Errorf("%w: root elements must be zones", ErrInvalidParent)
		}
		return db.WithContext(ctx).Create(e).Error
	}

	parent, err := GetElement(ctx, db, *e.ParentID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return fmt.Errorf("%w: parent %s does not exist", ErrInvalidParent, *e.ParentID)
		}
		return err
	}
	if parent.ProjectID != e.ProjectID {
		return fmt.Errorf("%w: parent belongs to another project", ErrInvalidParent)
	}
	if parent.Type != risk.KindZone {
		return fmt.Errorf("%w: assets cannot contain elements", ErrInvalidParent)
	}
	return db.WithContext(ctx).Create(e).Error
}

// DeleteElement removes an element, everything below it and their risks.
// It returns the number of elements removed.
func DeleteElement(ctx context.Context, db *gorm.DB, id string) (int, error) {
	var removed int
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ids, err := subtreeIDs(tx, id)
		if err != nil {
			return err
		}
		if err := tx.Where("element_id IN ?", ids).Delete(&models.Risk{}).Error; err != nil {
			return err
		}
		res := tx.Where("id IN ?", ids).Delete(&models.Element{})
		if res.Error != nil {
			return res.Error
		}
		removed = int(res.RowsAffected)
		return nil
	})
	return removed, err
}

func subtreeIDs(tx *gorm.DB, rootID string) ([]string, error) {
	seen := map[string]bool{rootID: true}
	all := []string{rootID}
	frontier := []string{rootID}

	for len(frontier) > 0 {
		var children []string
		if err := tx.Model(&models.Element{}).
			Where("parent_id IN ?", frontier).
			Pluck("id", &children).Error; err != nil {
			return nil, err
		}
		frontier = frontier[:0]
		for _, c := range children {
			if seen[c] {
				continue
			}
			seen[c] = true
			all = append(all, c)
			frontier = append(frontier, c)
		}
	}
	return all, nil
}
