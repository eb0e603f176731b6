package commands

import (
	"Checklister/internal/cli/builder"
	"flag"
	"fmt"
	"strings"
)

// multiFlag повторяемый строковый флаг.
type multiFlag []string

func (m *multiFlag) String() string { return strings.Join(*m, ",") }

func (m *multiFlag) Set(v string) error {
	*m = append(*m, v)
	return nil
}

// draftFlags правки черновика из командной строки. Пункт адресуется как "Категория/Пункт".
type draftFlags struct {
	fs          *flag.FlagSet
	from        string
	title       string
	description string

	removeCategory multiFlag
	removeItem     multiFlag
	renameCategory multiFlag
	renameItem     multiFlag
	category       multiFlag
	item           multiFlag
	attach         multiFlag
	detach         multiFlag
}

func bindDraftFlags(fs *flag.FlagSet, edit bool) *draftFlags {
	f := &draftFlags{fs: fs}
	fs.StringVar(&f.from, "from", "", "YAML/JSON checklist definition")
	fs.StringVar(&f.title, "title", "", "checklist title")
	fs.StringVar(&f.description, "description", "", "checklist description")
	fs.Var(&f.category, "category", "add category (repeatable)")
	fs.Var(&f.item, "item", `add item "Category/Item" (repeatable)`)
	fs.Var(&f.attach, "attach", `attach file "Category/Item=path" (repeatable)`)
	if edit {
		fs.Var(&f.removeCategory, "remove-category", "remove category by name")
		fs.Var(&f.removeItem, "remove-item", `remove item "Category/Item"`)
		fs.Var(&f.renameCategory, "rename-category", `rename category "Old=New"`)
		fs.Var(&f.renameItem, "rename-item", `rename item "Category/Old=New"`)
		fs.Var(&f.detach, "detach", `drop pending file "Category/Item"`)
	}
	return f
}

func (f *draftFlags) isSet(name string) bool {
	set := false
	f.fs.Visit(func(fl *flag.Flag) {
		if fl.Name == name {
			set = true
		}
	})
	return set
}

func splitItemRef(ref string) (string, string, error) {
	cat, item, ok := strings.Cut(ref, "/")
	if !ok || strings.TrimSpace(cat) == "" {
		return "", "", fmt.Errorf("item reference %q must be Category/Item", ref)
	}
	return strings.TrimSpace(cat), strings.TrimSpace(item), nil
}

func splitAssign(v string) (string, string, error) {
	l, r, ok := strings.Cut(v, "=")
	if !ok {
		return "", "", fmt.Errorf("%q must be Old=New", v)
	}
	return strings.TrimSpace(l), strings.TrimSpace(r), nil
}

func findItem(d *builder.Draft, ref string) (*builder.ItemDraft, error) {
	cat, name, err := splitItemRef(ref)
	if err != nil {
		return nil, err
	}
	it, ok := d.ItemByName(cat, name)
	if !ok {
		return nil, fmt.Errorf("item %q not found", ref)
	}
	return it, nil
}

func findCategory(d *builder.Draft, name string) (*builder.CategoryDraft, error) {
	c, ok := d.CategoryByName(strings.TrimSpace(name))
	if !ok {
		return nil, fmt.Errorf("category %q not found", name)
	}
	return c, nil
}

// apply применяет правки: файл определения, поля, удаления, переименования, добавления, файлы.
func (f *draftFlags) apply(d *builder.Draft) error {
	if f.from != "" {
		def, err := builder.LoadDefinition(f.from)
		if err != nil {
			return err
		}
		def.Apply(d)
	}
	if f.isSet("title") {
		d.Title = f.title
	}
	if f.isSet("description") {
		d.Description = f.description
	}
	for _, name := range f.removeCategory {
		c, err := findCategory(d, name)
		if err != nil {
			return err
		}
		_ = d.RemoveCategory(c.Key)
	}
	for _, ref := range f.removeItem {
		it, err := findItem(d, ref)
		if err != nil {
			return err
		}
		_ = d.RemoveItem(it.Key)
	}
	for _, v := range f.renameCategory {
		from, to, err := splitAssign(v)
		if err != nil {
			return err
		}
		c, err := findCategory(d, from)
		if err != nil {
			return err
		}
		_ = d.RenameCategory(c.Key, to)
	}
	for _, v := range f.renameItem {
		ref, to, err := splitAssign(v)
		if err != nil {
			return err
		}
		it, err := findItem(d, ref)
		if err != nil {
			return err
		}
		_ = d.RenameItem(it.Key, to)
	}
	for _, name := range f.category {
		if _, ok := d.CategoryByName(strings.TrimSpace(name)); !ok {
			d.AddCategory(strings.TrimSpace(name))
		}
	}
	for _, ref := range f.item {
		cat, name, err := splitItemRef(ref)
		if err != nil {
			return err
		}
		c, ok := d.CategoryByName(cat)
		if !ok {
			key := d.AddCategory(cat)
			c, _ = d.Category(key)
		}
		if _, err := d.AddItem(c.Key, name); err != nil {
			return err
		}
	}
	for _, v := range f.attach {
		ref, path, err := splitAssign(v)
		if err != nil {
			return err
		}
		it, err := findItem(d, ref)
		if err != nil {
			return err
		}
		if err := d.AttachFile(it.Key, path); err != nil {
			return err
		}
	}
	for _, ref := range f.detach {
		it, err := findItem(d, ref)
		if err != nil {
			return err
		}
		_ = d.DetachFile(it.Key)
	}
	return nil
}
