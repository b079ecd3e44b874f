package main

import (
	"fmt"

	"github.com/henderiw/blocktable/pkg/block"
	"github.com/henderiw/blocktable/pkg/blocktable"
	"k8s.io/apimachinery/pkg/labels"
	"k8s.io/apimachinery/pkg/selection"
)

var busy = []struct {
	blk    string
	labels map[string]string
}{
	{blk: "540-600", labels: map[string]string{"title": "standup", "team": "a"}},
	{blk: "570-630", labels: map[string]string{"title": "triage", "team": "a"}},
	{blk: "720-780", labels: map[string]string{"title": "review", "team": "b"}},
	{blk: "780-840", labels: map[string]string{"title": "planning", "team": "b"}},
}

func main() {
	day := block.New(0, 1440)

	bb := make([]block.Block, 0, len(busy))
	for _, v := range busy {
		b, err := block.Parse(v.blk)
		if err != nil {
			panic(err)
		}
		bb = append(bb, b)
	}

	fmt.Println("busy", block.Merge(bb))
	fmt.Println("free", block.Gaps(day, bb))

	morning := block.New(480, 720)
	for _, b := range bb {
		fmt.Println("limited to morning", b.Limited(morning))
	}

	vt, err := blocktable.NewTable[labels.Set](day, nil, nil)
	if err != nil {
		panic(err)
	}
	for _, v := range busy {
		b, err := block.Parse(v.blk)
		if err != nil {
			panic(err)
		}
		if err := vt.Claim(b, v.labels); err != nil {
			// 570-630 overlaps the standup
			fmt.Println(err)
		}
	}

	b, err := vt.ClaimSize(90, map[string]string{"title": "focus"})
	if err != nil {
		panic(err)
	}
	fmt.Println("claimed", b)

	selector, err := GetLabelSelector(map[string]string{"team": "b"})
	if err != nil {
		panic(err)
	}
	iter := vt.Iterate()
	for iter.Next() {
		if selector.Matches(iter.Value()) {
			fmt.Println("team b", iter.Block(), iter.Value())
		}
	}

	fmt.Println("free", vt.Free())
}

func GetLabelSelector(l map[string]string) (labels.Selector, error) {
	fullselector := labels.NewSelector()
	for k, v := range l {
		req, err := labels.NewRequirement(k, selection.Equals, []string{v})
		if err != nil {
			return nil, err
		}
		fullselector = fullselector.Add(*req)
	}
	return fullselector, nil
}
