package verbose

import (
	"fmt"
	"strings"
)

type flagName struct {
	mask uint32
	name string
}

const (
	accPublic       = 0x0001
	accPrivate      = 0x0002
	accProtected    = 0x0004
	accStatic       = 0x0008
	accFinal        = 0x0010
	accSuper        = 0x0020
	accSynchronized = 0x0020
	accVolatile     = 0x0040
	accBridge       = 0x0040
	accTransient    = 0x0080
	accVarargs      = 0x0080
	accNative       = 0x0100
	accEnum         = 0x4000
	accInterface    = 0x0200
	accAbstract     = 0x0400
	accStrict       = 0x0800
	accSynthetic    = 0x1000
	accExtSynthetic = 0xf0000000
)

var (
	classModifiers = []flagName{
		{accPublic, "PUBLIC"},
		{accPrivate, "PRIVATE"},
		{accProtected, "PROTECTED"},
		{accStatic, "STATIC"},
		{accFinal, "FINAL"},
		{accSuper, "SUPER"},
		{accInterface, "INTERFACE"},
		{accAbstract, "ABSTRACT"},
		{accSynthetic | accExtSynthetic, "SYNTHETIC"},
	}

	methodModifiers = []flagName{
		{accPublic, "PUBLIC"},
		{accPrivate, "PRIVATE"},
		{accProtected, "PROTECTED"},
		{accStatic, "STATIC"},
		{accFinal, "FINAL"},
		{accSynchronized, "SYNCHRONIZED"},
		{accBridge, "BRIDGE"},
		{accVarargs, "VARARGS"},
		{accNative, "NATIVE"},
		{accAbstract, "ABSTRACT"},
		{accStrict, "STRICT"},
		{accSynthetic | accExtSynthetic, "SYNTHETIC"},
	}

	fieldModifiers = []flagName{
		{accPublic, "PUBLIC"},
		{accPrivate, "PRIVATE"},
		{accProtected, "PROTECTED"},
		{accStatic, "STATIC"},
		{accFinal, "FINAL"},
		{accVolatile, "VOLATILE"},
		{accTransient, "TRANSIENT"},
		{accEnum, "ENUM"},
		{accSynthetic | accExtSynthetic, "SYNTHETIC"},
	}

	classStatus = []flagName{
		{1, "VERIFIED"},
		{2, "PREPARED"},
		{4, "INITIALIZED"},
		{8, "ERROR"},
	}

	invocationOptions = []flagName{
		{1, "SINGLE_THREADED"},
		{2, "NONVIRTUAL"},
	}

	suspendStatus = []flagName{
		{1, "SUSPENDED"},
	}

	typeTags = map[byte]string{
		1: "CLASS",
		2: "INTERFACE",
		3: "ARRAY",
	}

	threadStatus = map[int32]string{
		0: "ZOMBIE",
		1: "RUNNING",
		2: "SLEEPING",
		3: "MONITOR",
		4: "WAIT",
	}

	suspendPolicies = map[byte]string{
		0: "NONE",
		1: "EVENT_THREAD",
		2: "ALL",
	}

	stepDepths = map[int32]string{
		0: "INTO",
		1: "OVER",
		2: "OUT",
	}

	stepSizes = map[int32]string{
		0: "MIN",
		1: "LINE",
	}
)

func formatFlags(v uint32, names []flagName) string {
	var set []string
	for _, f := range names {
		if v&f.mask != 0 {
			set = append(set, f.name)
		}
	}
	return fmt.Sprintf("0x%08X (%v)", v, strings.Join(set, " "))
}

func formatTypeTag(tag byte) string {
	name, ok := typeTags[tag]
	if !ok {
		name = "unknown"
	}
	return fmt.Sprintf("0x%02X (%v)", tag, name)
}

func lookup[K comparable](names map[K]string, k K) string {
	if n, ok := names[k]; ok {
		return n
	}
	return "unknown"
}

func (d *decoder) flags(label string, names []flagName) {
	v := d.i32()
	d.println(label, formatFlags(uint32(v), names))
}

func (d *decoder) classStatus(label string) {
	d.flags(label, classStatus)
}

func (d *decoder) threadStatus() {
	v := d.i32()
	d.println("Thread status:", fmt.Sprintf("0x%08X (%v)", uint32(v), lookup(threadStatus, v)))
}

func (d *decoder) suspendPolicy() {
	v := d.u8()
	d.println("Suspend policy:", fmt.Sprintf("0x%02X (%v)", v, lookup(suspendPolicies, v)))
}

func (d *decoder) stepSize() {
	v := d.i32()
	d.println("Step size:", fmt.Sprintf("0x%08X (%v)", uint32(v), lookup(stepSizes, v)))
}

func (d *decoder) stepDepth() {
	v := d.i32()
	d.println("Step depth:", fmt.Sprintf("0x%08X (%v)", uint32(v), lookup(stepDepths, v)))
}
