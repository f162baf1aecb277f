// SPDX-License-Identifier: Apache-2.0

package menu

import (
	"reflect"
	"testing"

	"sshmenu/internal/settings"
	"sshmenu/internal/sshconfig"
)

func hosts(aliases ...string) []sshconfig.HostEntry {
	out := make([]sshconfig.HostEntry, len(aliases))
	for i, a := range aliases {
		out[i] = sshconfig.HostEntry{Alias: a}
	}
	return out
}

func childIDs(n Node) []string {
	ids := make([]string, len(n.Children))
	for i, c := range n.Children {
		ids[i] = c.ID
	}
	return ids
}

func countOps(patches []Patch) map[Op]int {
	counts := map[Op]int{}
	for _, p := range patches {
		counts[p.Op]++
	}
	return counts
}

func TestBuild_Layout(t *testing.T) {
	s := settings.Settings{
		Actions: []settings.Entry{
			{Action: &settings.Action{Name: "Top", Cmd: "echo top"}},
		},
	}
	tree := Build(hosts("web", "db"), s)

	want := []string{
		"host:web", "host:db",
		"sep:actions", "action:Top",
		"sep:system", ConfigureID, ReloadID, QuitID,
	}
	if got := childIDs(tree); !reflect.DeepEqual(got, want) {
		t.Fatalf("layout mismatch:\ngot  %v\nwant %v", got, want)
	}
}

func TestBuild_EmptyRegistryStillHasSystemBlock(t *testing.T) {
	tree := Build(nil, settings.Settings{})
	want := []string{ConfigureID, ReloadID, QuitID}
	if got := childIDs(tree); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected bare system block, got %v", got)
	}
}

func TestBuild_IsPureAndDeterministic(t *testing.T) {
	reg := hosts("web", "db")
	s := settings.Settings{
		Actions: []settings.Entry{
			{Group: &settings.Group{Name: "Prod", Entries: []settings.Entry{
				{Action: &settings.Action{Name: "Primary", Cmd: "ssh db-1"}},
			}}},
		},
	}
	a := Build(reg, s)
	b := Build(reg, s)
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("Build is not deterministic:\n%+v\n%+v", a, b)
	}
}

func TestBuild_IDsStableAcrossUnrelatedFieldChange(t *testing.T) {
	before := Build([]sshconfig.HostEntry{
		{Alias: "web", HostName: "old.example.com"},
		{Alias: "db"},
	}, settings.Settings{})
	after := Build([]sshconfig.HostEntry{
		{Alias: "web", HostName: "new.example.com"},
		{Alias: "db"},
	}, settings.Settings{})
	if !reflect.DeepEqual(childIDs(before), childIDs(after)) {
		t.Fatalf("ids must not depend on hostname:\n%v\n%v", childIDs(before), childIDs(after))
	}
}

func TestBuild_GroupBecomesSubmenu(t *testing.T) {
	s := settings.Settings{
		Actions: []settings.Entry{
			{Group: &settings.Group{Name: "Prod", Entries: []settings.Entry{
				{Action: &settings.Action{Name: "Primary", Cmd: "ssh db-1"}},
			}}},
		},
	}
	tree := Build(nil, s)
	group := tree.Children[0]
	if group.Kind != KindGroup || group.Label != "Prod" {
		t.Fatalf("expected group node first, got %+v", group)
	}
	if len(group.Children) != 1 || group.Children[0].ID != "action:Prod/Primary" {
		t.Fatalf("group children mishandled: %+v", group.Children)
	}
}

func TestActionID_DerivedFromPathNotPosition(t *testing.T) {
	build := func(first string) Node {
		return Build(nil, settings.Settings{
			Actions: []settings.Entry{
				{Action: &settings.Action{Name: first, Cmd: "x"}},
				{Action: &settings.Action{Name: "Stable", Cmd: "y"}},
			},
		})
	}
	a := build("Alpha")
	b := build("Renamed")
	// The sibling rename must not change Stable's id.
	if a.Children[1].ID != "action:Stable" || b.Children[1].ID != "action:Stable" {
		t.Fatalf("sibling rename changed an unrelated id: %v vs %v", a.Children[1].ID, b.Children[1].ID)
	}
}

func TestFindAction(t *testing.T) {
	s := settings.Settings{
		Actions: []settings.Entry{
			{Action: &settings.Action{Name: "Top", Cmd: "echo top"}},
			{Group: &settings.Group{Name: "Prod", Entries: []settings.Entry{
				{Action: &settings.Action{Name: "Primary", Cmd: "ssh db-1"}},
			}}},
		},
	}
	if cmd, ok := FindAction(s, "action:Prod/Primary"); !ok || cmd != "ssh db-1" {
		t.Fatalf("nested action lookup failed: %q %v", cmd, ok)
	}
	if cmd, ok := FindAction(s, "action:Top"); !ok || cmd != "echo top" {
		t.Fatalf("top-level action lookup failed: %q %v", cmd, ok)
	}
	if _, ok := FindAction(s, "action:Missing"); ok {
		t.Fatalf("expected miss for unknown action id")
	}
}

func TestHostAlias(t *testing.T) {
	if alias, ok := HostAlias(HostID("web")); !ok || alias != "web" {
		t.Fatalf("HostAlias round trip failed: %q %v", alias, ok)
	}
	if _, ok := HostAlias(ReloadID); ok {
		t.Fatalf("non-host id must not parse as host")
	}
}

func TestDiff_IdenticalTreesYieldNoPatches(t *testing.T) {
	tree := Build(hosts("web", "db"), settings.Settings{})
	if patches := Diff(tree, tree); len(patches) != 0 {
		t.Fatalf("expected empty diff, got %+v", patches)
	}
}

func TestDiff_RemovedHost(t *testing.T) {
	old := Build(hosts("web", "db"), settings.Settings{})
	new := Build(hosts("web"), settings.Settings{})
	patches := Diff(old, new)
	counts := countOps(patches)
	if counts[OpRemove] != 1 || counts[OpInsert] != 0 || counts[OpReorder] != 0 {
		t.Fatalf("expected exactly one remove, got %+v", patches)
	}
	if patches[0].ID != "host:db" {
		t.Fatalf("wrong node removed: %+v", patches[0])
	}
}

func TestDiff_InsertedHostAtIndex(t *testing.T) {
	old := Build(hosts("web", "db"), settings.Settings{})
	new := Build(hosts("web", "cache", "db"), settings.Settings{})
	patches := Diff(old, new)
	counts := countOps(patches)
	if counts[OpInsert] != 1 || counts[OpRemove] != 0 || counts[OpReorder] != 0 {
		t.Fatalf("expected exactly one insert, got %+v", patches)
	}
	p := patches[0]
	if p.ParentID != RootID || p.Index != 1 || p.Node.ID != "host:cache" {
		t.Fatalf("insert misplaced: %+v", p)
	}
}

func TestDiff_PureReorderIsSingleReorderPatch(t *testing.T) {
	old := Build(hosts("web", "db", "cache"), settings.Settings{})
	new := Build(hosts("cache", "web", "db"), settings.Settings{})
	patches := Diff(old, new)
	counts := countOps(patches)
	if counts[OpReorder] != 1 || counts[OpInsert] != 0 || counts[OpRemove] != 0 || counts[OpUpdateLabel] != 0 {
		t.Fatalf("expected a single reorder, got %+v", patches)
	}
	wantOrder := childIDs(new)
	if !reflect.DeepEqual(patches[0].Order, wantOrder) {
		t.Fatalf("reorder order mismatch: got %v want %v", patches[0].Order, wantOrder)
	}
}

func TestDiff_LabelChangeOnly(t *testing.T) {
	old := Node{ID: RootID, Kind: KindGroup, Children: []Node{
		{ID: "action:Deploy", Label: "Deploy", Kind: KindAction},
	}}
	new := Node{ID: RootID, Kind: KindGroup, Children: []Node{
		{ID: "action:Deploy", Label: "Deploy (stage)", Kind: KindAction},
	}}
	patches := Diff(old, new)
	if len(patches) != 1 || patches[0].Op != OpUpdateLabel || patches[0].Label != "Deploy (stage)" {
		t.Fatalf("expected one label update, got %+v", patches)
	}
}

func TestDiff_RecursesIntoGroups(t *testing.T) {
	mk := func(names ...string) Node {
		var entries []settings.Entry
		for _, n := range names {
			entries = append(entries, settings.Entry{Action: &settings.Action{Name: n, Cmd: "x"}})
		}
		return Build(nil, settings.Settings{
			Actions: []settings.Entry{{Group: &settings.Group{Name: "Prod", Entries: entries}}},
		})
	}
	old := mk("A", "B")
	new := mk("A", "B", "C")
	patches := Diff(old, new)
	if len(patches) != 1 || patches[0].Op != OpInsert {
		t.Fatalf("expected one nested insert, got %+v", patches)
	}
	if patches[0].ParentID != "group:Prod" || patches[0].Index != 2 {
		t.Fatalf("nested insert misaddressed: %+v", patches[0])
	}
}

func TestDiff_InsertCarriesSubtree(t *testing.T) {
	old := Build(nil, settings.Settings{})
	new := Build(nil, settings.Settings{
		Actions: []settings.Entry{{Group: &settings.Group{Name: "Prod", Entries: []settings.Entry{
			{Action: &settings.Action{Name: "Primary", Cmd: "ssh db-1"}},
		}}}},
	})
	patches := Diff(old, new)
	var groupInsert *Patch
	for i := range patches {
		if patches[i].Op == OpInsert && patches[i].Node.ID == "group:Prod" {
			groupInsert = &patches[i]
		}
	}
	if groupInsert == nil {
		t.Fatalf("expected insert of group subtree, got %+v", patches)
	}
	if len(groupInsert.Node.Children) != 1 {
		t.Fatalf("insert must carry the whole subtree: %+v", groupInsert.Node)
	}
}
