package builder

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Definition — описание чек-листа в файле YAML или JSON.
//
//	title: Move-out
//	description: Flat handover
//	categories:
//	  - name: Kitchen
//	    items:
//	      - Clean oven
//	      - name: Defrost fridge
//	        file: manual.pdf
type Definition struct {
	Title       string          `yaml:"title"`
	Description string          `yaml:"description"`
	Categories  []CategoryEntry `yaml:"categories"`
}

type CategoryEntry struct {
	Name  string      `yaml:"name"`
	Items []ItemEntry `yaml:"items"`
}

// ItemEntry пункт: строка с именем или объект {name, file}.
type ItemEntry struct {
	Name string `yaml:"name"`
	File string `yaml:"file"`
}

func (e *ItemEntry) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		e.Name = node.Value
		return nil
	}
	type plain ItemEntry
	var p plain
	if err := node.Decode(&p); err != nil {
		return err
	}
	*e = ItemEntry(p)
	return nil
}

// ParseDefinition разбирает YAML (JSON — его подмножество).
func ParseDefinition(data []byte) (*Definition, error) {
	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("parse definition: %w", err)
	}
	if def.Title == "" && len(def.Categories) == 0 {
		return nil, errors.New("parse definition: empty document")
	}
	return &def, nil
}

// LoadDefinition читает файл; относительные пути вложений считаются от каталога файла.
func LoadDefinition(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	def, err := ParseDefinition(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	base := filepath.Dir(path)
	for ci := range def.Categories {
		for ii := range def.Categories[ci].Items {
			it := &def.Categories[ci].Items[ii]
			if it.File != "" && !filepath.IsAbs(it.File) {
				it.File = filepath.Join(base, it.File)
			}
		}
	}
	return def, nil
}

// Apply переносит описание в черновик. Категории и пункты сопоставляются с уже
// существующими по имени, чтобы в режиме редактирования сохранить их id и загрузки;
// всё, чего нет в описании, удаляется. Пустой title не затирает текущий.
func (def *Definition) Apply(d *Draft) {
	if def.Title != "" {
		d.Title = def.Title
	}
	if def.Description != "" {
		d.Description = def.Description
	}

	usedCat := make(map[string]bool)
	var cats []*CategoryDraft
	for _, ce := range def.Categories {
		cat := takeCategory(d.Categories, ce.Name, usedCat)
		if cat == nil {
			cat = &CategoryDraft{Key: newKey(), Name: ce.Name}
		}
		usedItem := make(map[string]bool)
		var items []*ItemDraft
		for _, ie := range ce.Items {
			it := takeItem(cat.Items, ie.Name, usedItem)
			if it == nil {
				it = &ItemDraft{Key: newKey(), Name: ie.Name}
			}
			if ie.File != "" {
				it.PendingFile = ie.File
			}
			items = append(items, it)
		}
		cat.Items = items
		cats = append(cats, cat)
	}
	d.Categories = cats
}

func takeCategory(list []*CategoryDraft, name string, used map[string]bool) *CategoryDraft {
	for _, c := range list {
		if c.Name == name && !used[c.Key] {
			used[c.Key] = true
			return c
		}
	}
	return nil
}

func takeItem(list []*ItemDraft, name string, used map[string]bool) *ItemDraft {
	for _, it := range list {
		if it.Name == name && !used[it.Key] {
			used[it.Key] = true
			return it
		}
	}
	return nil
}
