package detection

import (
	"fmt"
	"image"
	"os"

	"gocv.io/x/gocv"

	"zoneguard/internal/logger"
	"zoneguard/internal/video"
)

// detectionThreshold filters raw network output; the configurable pipeline
// threshold is applied on top of this by the frame processor.
const detectionThreshold = 0.5

// cocoLabels maps the 1-based TensorFlow COCO class IDs of the bundled SSD
// model to class names.
var cocoLabels = map[int]string{
	1:  "person",
	2:  "bicycle",
	3:  "car",
	4:  "motorcycle",
	5:  "airplane",
	6:  "bus",
	8:  "truck",
	16: "bird",
	17: "cat",
	18: "dog",
}

// DNNDetector runs object detection with a gocv DNN network.
type DNNDetector struct {
	net        gocv.Net
	modelPath  string
	configPath string
	logger     *logger.Logger
}

// NewDNNDetector loads the detection network. A load failure is logged and
// the detector is returned anyway; Detect will then fail per frame, which the
// pipeline tolerates by skipping frames.
func NewDNNDetector(modelPath, configPath string, log *logger.Logger) *DNNDetector {
	detector := &DNNDetector{
		modelPath:  modelPath,
		configPath: configPath,
		logger:     log,
	}

	if err := detector.initializeNet(); err != nil {
		log.Warning("Could not initialize detection network: %v", err)
		return detector
	}

	return detector
}

func (d *DNNDetector) initializeNet() error {
	if _, err := os.Stat(d.modelPath); os.IsNotExist(err) {
		return fmt.Errorf("model file not found: %s", d.modelPath)
	}

	if _, err := os.Stat(d.configPath); os.IsNotExist(err) {
		return fmt.Errorf("config file not found: %s", d.configPath)
	}

	net := gocv.ReadNet(d.modelPath, d.configPath)
	if net.Empty() {
		return fmt.Errorf("failed to load network")
	}
	net.SetPreferableBackend(gocv.NetBackendDefault)
	net.SetPreferableTarget(gocv.NetTargetCPU)

	d.net = net
	d.logger.Info("Detection network initialized successfully")
	return nil
}

// Detect runs a forward pass over the frame and returns detections in pixel
// coordinates.
func (d *DNNDetector) Detect(frame *video.Frame) ([]Detection, error) {
	if d.net.Empty() {
		return nil, fmt.Errorf("detection network not initialized")
	}

	if frame.Mat.Empty() {
		return nil, fmt.Errorf("frame is empty")
	}

	blob := gocv.BlobFromImage(
		frame.Mat,
		1.0/127.5,
		image.Pt(300, 300),
		gocv.NewScalar(127.5, 127.5, 127.5, 0),
		true,  // swapRB
		false, // crop
	)
	defer blob.Close()

	d.net.SetInput(blob, "")

	output := d.net.Forward("")
	defer output.Close()

	return d.processOutput(output, frame.Width, frame.Height), nil
}

// processOutput converts the network's DetectionOutput blob into detections.
// The blob reshapes to 7-column rows.
func (d *DNNDetector) processOutput(output gocv.Mat, frameWidth, frameHeight int) []Detection {
	reshaped := output.Reshape(1, output.Total()/7)
	defer reshaped.Close()

	var detections []Detection
	for i := 0; i < reshaped.Rows(); i++ {
		var row [7]float32
		for j := 0; j < 7; j++ {
			row[j] = reshaped.GetFloatAt(i, j)
		}

		if det, ok := detectionFromRow(row, frameWidth, frameHeight); ok {
			detections = append(detections, det)
		}
	}

	return detections
}

// detectionFromRow maps one DetectionOutput row, laid out as
// [batchId classId confidence x1 y1 x2 y2] with corner coordinates normalized
// to the 0-1 range, to a Detection in pixel coordinates clamped to the frame.
func detectionFromRow(row [7]float32, frameWidth, frameHeight int) (Detection, bool) {
	confidence := row[2]
	if confidence <= detectionThreshold {
		return Detection{}, false
	}

	x1 := int(row[3] * float32(frameWidth))
	y1 := int(row[4] * float32(frameHeight))
	x2 := int(row[5] * float32(frameWidth))
	y2 := int(row[6] * float32(frameHeight))

	x := max(0, min(x1, frameWidth))
	y := max(0, min(y1, frameHeight))
	w := max(0, min(x2, frameWidth)-x)
	h := max(0, min(y2, frameHeight)-y)

	return Detection{
		Label:      labelFor(int(row[1])),
		Confidence: float64(confidence),
		X:          x,
		Y:          y,
		Width:      w,
		Height:     h,
	}, true
}

// Close releases the network.
func (d *DNNDetector) Close() {
	if !d.net.Empty() {
		d.net.Close()
	}
}

func labelFor(classID int) string {
	if label, exists := cocoLabels[classID]; exists {
		return label
	}
	return fmt.Sprintf("unknown_%d", classID)
}
