package outbound

type MuxerPort interface {
	Combine(framePath string, audioPath string) (string, error)
}
