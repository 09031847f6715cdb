package filebyte

import (
	"fmt"

	"github.com/shirou/gopsutil/v4/disk"
	"github.com/sirupsen/logrus"
)

// Mount describes one mounted filesystem as supplied by the disk
// collaborator. The engine only formats these records; it never
// enumerates devices itself.
type Mount struct {
	// Device is the device name or identifier.
	Device string
	// MountPoint is where the filesystem is mounted.
	MountPoint string
	// FSType is the filesystem type.
	FSType string
	// TotalBytes and UsedBytes are the capacity figures.
	TotalBytes uint64
	UsedBytes  uint64
}

// AvailableBytes returns the remaining capacity.
func (m Mount) AvailableBytes() uint64 {
	if m.UsedBytes > m.TotalBytes {
		return 0
	}

	return m.TotalBytes - m.UsedBytes
}

// UsagePercent returns used capacity as a percentage of total.
func (m Mount) UsagePercent() float64 {
	if m.TotalBytes == 0 {
		return 0
	}

	return 100 * float64(m.UsedBytes) / float64(m.TotalBytes)
}

// MountLister supplies mounted filesystems.
type MountLister interface {
	Mounts() ([]Mount, error)
}

// SystemMounts lists physical mounts of the running system.
type SystemMounts struct{}

// Mounts returns the system's physical partitions with capacity figures.
// Partitions whose usage cannot be read are logged and skipped.
func (SystemMounts) Mounts() ([]Mount, error) {
	partitions, err := disk.Partitions(false)
	if err != nil {
		return nil, fmt.Errorf("listing partitions: %w", err)
	}

	mounts := make([]Mount, 0, len(partitions))

	for _, part := range partitions {
		usage, err := disk.Usage(part.Mountpoint)
		if err != nil {
			logrus.WithField("mount", part.Mountpoint).WithError(err).Debug("skipping unreadable mount")

			continue
		}

		mounts = append(mounts, Mount{
			Device:     part.Device,
			MountPoint: part.Mountpoint,
			FSType:     part.Fstype,
			TotalBytes: usage.Total,
			UsedBytes:  usage.Used,
		})
	}

	return mounts, nil
}

// FindMount locates a mount by device name or mount point.
func FindMount(mounts []Mount, name string) (Mount, bool) {
	for _, mount := range mounts {
		if mount.Device == name || mount.MountPoint == name {
			return mount, true
		}
	}

	return Mount{}, false
}
